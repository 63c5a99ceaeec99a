package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/middleware"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// ContentHandler exposes the in-place editing operations of the admin UI.
// Every route acts for the admin session attached to the request; deletes
// additionally require ?confirm=true.
type ContentHandler struct {
	editors EditorProvider
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(editors EditorProvider) *ContentHandler {
	if editors == nil {
		panic("editors cannot be nil")
	}
	return &ContentHandler{editors: editors}
}

func (h *ContentHandler) editorFor(r *http.Request) *editor.ContentEditor {
	return h.editors.Editor(middleware.AdminFromContext(r.Context()))
}

// pathID parses a numeric record id from the URL. It writes the 400 response
// itself when the id is malformed.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := utils.ParseInt64(chi.URLParam(r, param))
	if err != nil {
		utils.ErrorFromAppError(w, utils.NewValidationError(param, "must be a numeric id"))
		return 0, false
	}
	return id, true
}

func confirmed(r *http.Request) bool {
	return utils.ParseBool(r.URL.Query().Get(constants.QueryParamConfirm))
}

func decodeFieldUpdate(w http.ResponseWriter, r *http.Request) (models.FieldUpdate, bool) {
	var update models.FieldUpdate
	if err := utils.DecodeJSON(r, &update); err != nil {
		utils.WriteError(w, err)
		return update, false
	}
	return update, true
}

// respond writes the result of an editor call
func respond[T any](w http.ResponseWriter, status int, result T, err error) {
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.JSON(w, status, result)
}

// updateText handles the single-record text fields: site settings, course info and landing copy.
// One request is one begin, input and commit cycle of an inline field.
func (h *ContentHandler) updateText(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, ed *editor.ContentEditor, field, value string) (interface{}, error)) {
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}

	ed := h.editorFor(r)
	name := chi.URLParam(r, constants.ParamField)

	var result interface{}
	field := editor.NewField("", ed.CanEdit, func(value string) error {
		var err error
		result, err = apply(r.Context(), ed, name, value)
		return err
	})

	err := field.Begin()
	if err == nil {
		err = field.Input(update.Value)
	}
	if err == nil {
		err = field.Commit()
	}
	respond(w, http.StatusOK, result, err)
}

// UpdateSiteSetting handles PUT /settings/{field}
func (h *ContentHandler) UpdateSiteSetting(w http.ResponseWriter, r *http.Request) {
	h.updateText(w, r, func(ctx context.Context, ed *editor.ContentEditor, field, value string) (interface{}, error) {
		return ed.UpdateSiteSetting(ctx, field, value)
	})
}

// UpdateCourseInfo handles PUT /course-info/{field}
func (h *ContentHandler) UpdateCourseInfo(w http.ResponseWriter, r *http.Request) {
	h.updateText(w, r, func(ctx context.Context, ed *editor.ContentEditor, field, value string) (interface{}, error) {
		return ed.UpdateCourseInfo(ctx, field, value)
	})
}

// UpdateLandingText handles PUT /landing/{field}
func (h *ContentHandler) UpdateLandingText(w http.ResponseWriter, r *http.Request) {
	h.updateText(w, r, func(ctx context.Context, ed *editor.ContentEditor, field, value string) (interface{}, error) {
		return ed.UpdateLandingText(ctx, field, value)
	})
}

// AddFeature appends a placeholder feature card
func (h *ContentHandler) AddFeature(w http.ResponseWriter, r *http.Request) {
	feature, err := h.editorFor(r).AddFeature(r.Context())
	respond(w, http.StatusCreated, feature, err)
}

// UpdateFeature sets one field of a feature card
func (h *ContentHandler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	landing, err := h.editorFor(r).UpdateFeature(r.Context(), id, chi.URLParam(r, constants.ParamField), update.Value)
	respond(w, http.StatusOK, landing, err)
}

// DeleteFeature removes a feature card
func (h *ContentHandler) DeleteFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	landing, err := h.editorFor(r).DeleteFeature(r.Context(), id, confirmed(r))
	respond(w, http.StatusOK, landing, err)
}

// AddTestimonial appends a placeholder testimonial
func (h *ContentHandler) AddTestimonial(w http.ResponseWriter, r *http.Request) {
	testimonial, err := h.editorFor(r).AddTestimonial(r.Context())
	respond(w, http.StatusCreated, testimonial, err)
}

// UpdateTestimonial sets one field of a testimonial
func (h *ContentHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	landing, err := h.editorFor(r).UpdateTestimonial(r.Context(), id, chi.URLParam(r, constants.ParamField), update.Value)
	respond(w, http.StatusOK, landing, err)
}

// DeleteTestimonial removes a testimonial
func (h *ContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	landing, err := h.editorFor(r).DeleteTestimonial(r.Context(), id, confirmed(r))
	respond(w, http.StatusOK, landing, err)
}

// AddModule appends a placeholder course module
func (h *ContentHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.editorFor(r).AddModule(r.Context())
	respond(w, http.StatusCreated, module, err)
}

// UpdateModule sets the title or description of a module
func (h *ContentHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	modules, err := h.editorFor(r).UpdateModule(r.Context(), id, chi.URLParam(r, constants.ParamField), update.Value)
	respond(w, http.StatusOK, modules, err)
}

// DeleteModule removes a module together with its resources
func (h *ContentHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	modules, err := h.editorFor(r).DeleteModule(r.Context(), id, confirmed(r))
	respond(w, http.StatusOK, modules, err)
}

// MoveModule swaps a module with its neighbour. Moving past either end is a no-op.
func (h *ContentHandler) MoveModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	dir, ok := content.ParseDirection(chi.URLParam(r, constants.ParamDirection))
	if !ok {
		utils.ErrorFromAppError(w, utils.NewValidationError(constants.ParamDirection, "must be up or down"))
		return
	}
	modules, err := h.editorFor(r).MoveModule(r.Context(), id, dir)
	respond(w, http.StatusOK, modules, err)
}

// SetModuleEmbed stores a pasted embed code after checking it contains an iframe
func (h *ContentHandler) SetModuleEmbed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	modules, err := h.editorFor(r).SetModuleEmbed(r.Context(), id, update.Value)
	respond(w, http.StatusOK, modules, err)
}

// ClearModuleEmbed removes the embed code of a module
func (h *ContentHandler) ClearModuleEmbed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	modules, err := h.editorFor(r).ClearModuleEmbed(r.Context(), id)
	respond(w, http.StatusOK, modules, err)
}

// AddResource appends a placeholder resource link to a module
func (h *ContentHandler) AddResource(w http.ResponseWriter, r *http.Request) {
	moduleID, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	resource, err := h.editorFor(r).AddResource(r.Context(), moduleID)
	respond(w, http.StatusCreated, resource, err)
}

// UpdateResource sets the title or URL of a resource
func (h *ContentHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	moduleID, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	resourceID, ok := pathID(w, r, constants.ParamResourceID)
	if !ok {
		return
	}
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	modules, err := h.editorFor(r).UpdateResource(r.Context(), moduleID, resourceID, chi.URLParam(r, constants.ParamField), update.Value)
	respond(w, http.StatusOK, modules, err)
}

// DeleteResource removes a resource from its module
func (h *ContentHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	moduleID, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	resourceID, ok := pathID(w, r, constants.ParamResourceID)
	if !ok {
		return
	}
	modules, err := h.editorFor(r).DeleteResource(r.Context(), moduleID, resourceID, confirmed(r))
	respond(w, http.StatusOK, modules, err)
}

// AddFAQ appends a placeholder question
func (h *ContentHandler) AddFAQ(w http.ResponseWriter, r *http.Request) {
	faq, err := h.editorFor(r).AddFAQ(r.Context())
	respond(w, http.StatusCreated, faq, err)
}

// UpdateFAQ sets the question or answer of an FAQ
func (h *ContentHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	update, ok := decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	faqs, err := h.editorFor(r).UpdateFAQ(r.Context(), id, chi.URLParam(r, constants.ParamField), update.Value)
	respond(w, http.StatusOK, faqs, err)
}

// DeleteFAQ removes an FAQ
func (h *ContentHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, constants.ParamID)
	if !ok {
		return
	}
	faqs, err := h.editorFor(r).DeleteFAQ(r.Context(), id, confirmed(r))
	respond(w, http.StatusOK, faqs, err)
}
