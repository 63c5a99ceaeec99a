package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/middleware"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// DraftHandler serves the draft slots and their change feed
type DraftHandler struct {
	draftService   DraftServiceInterface
	allowedOrigins []string
}

// NewDraftHandler creates a new DraftHandler.
//
// Parameters:
//   - draftService: The draft slot service
//   - allowedOrigins: Origin patterns accepted for the websocket feed, in
//     addition to the request's own host
func NewDraftHandler(draftService DraftServiceInterface, allowedOrigins []string) *DraftHandler {
	if draftService == nil {
		panic("draftService cannot be nil")
	}
	return &DraftHandler{
		draftService:   draftService,
		allowedOrigins: allowedOrigins,
	}
}

// ListDrafts returns every slot, with seeds standing in for missing or corrupt documents
func (h *DraftHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	slots, err := h.draftService.GetAll(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSONWithCount(w, http.StatusOK, slots, len(slots))
}

// GetDraft returns a single slot
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	slot := models.SlotName(chi.URLParam(r, constants.ParamSlot))

	doc, err := h.draftService.Get(r.Context(), slot)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, doc)
}

// GetTheme returns the theme shades derived from the site settings draft
func (h *DraftHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	doc, err := h.draftService.Get(r.Context(), models.SlotSiteSettings)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var theme string
	if settings, ok := doc.(models.SiteSettings); ok {
		theme = settings.ThemeColor
	}
	utils.JSON(w, http.StatusOK, content.NewPalette(theme))
}

// ReplaceDraft overwrites a slot with the JSON document in the body.
// Admin mode is required.
func (h *DraftHandler) ReplaceDraft(w http.ResponseWriter, r *http.Request) {
	slot := models.SlotName(chi.URLParam(r, constants.ParamSlot))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.BadRequest(w, constants.MsgRequestBodyTooLarge, nil)
			return
		}
		utils.BadRequest(w, constants.MsgMalformedJSON, nil)
		return
	}
	if len(body) == 0 {
		utils.BadRequest(w, constants.MsgEmptyRequestBody, nil)
		return
	}

	admin := middleware.AdminFromContext(r.Context())
	if err := h.draftService.Replace(r.Context(), admin, slot, body); err != nil {
		utils.WriteError(w, err)
		return
	}

	doc, err := h.draftService.Get(r.Context(), slot)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, doc)
}

// DraftEvents upgrades to a websocket and streams every committed change of
// the slot named by ?slot=, or of all slots when it is absent. The feed is
// one-way; messages from the client are discarded.
func (h *DraftHandler) DraftEvents(w http.ResponseWriter, r *http.Request) {
	slot := models.SlotName(r.URL.Query().Get(constants.QueryParamSlot))

	sub, err := h.draftService.Subscribe(slot)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	defer sub.Close()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.allowedOrigins,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Draft events upgrade failed")
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())

	log.Debug().Str("slot", string(slot)).Msg("Draft events subscriber attached")

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case change, ok := <-sub.C:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "subscription closed")
				return
			}
			if err := writeChange(ctx, conn, change); err != nil {
				log.Debug().Err(err).Str("slot", string(slot)).Msg("Draft events subscriber gone")
				return
			}
		}
	}
}

func writeChange(ctx context.Context, conn *websocket.Conn, change draftstore.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DraftEventsWriteTimeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, payload)
}
