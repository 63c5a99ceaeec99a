package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/publish"
	"github.com/coursecms/coursesite/internal/utils"
)

// PublishHandler commits content to the hosting repository and serves the local export
type PublishHandler struct {
	publishService PublishServiceInterface
}

// NewPublishHandler creates a new PublishHandler
func NewPublishHandler(publishService PublishServiceInterface) *PublishHandler {
	if publishService == nil {
		panic("publishService cannot be nil")
	}
	return &PublishHandler{publishService: publishService}
}

// Publish commits the site snapshot in the request body.
//
// Missing hosting configuration is reported before the body is read. The body
// is decoded leniently: unknown keys are ignored so older clients
// keep working, but a snapshot without siteSettings is rejected before any
// call to the hosting API.
func (h *PublishHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendMessage(w, http.StatusMethodNotAllowed, constants.MsgMethodNotAllowed)
		return
	}

	if !h.publishService.Configured() {
		log.Error().Str("category", constants.LogCategoryPublish).Msg("Publish attempted without configuration")
		sendMessage(w, http.StatusInternalServerError, constants.MsgPublishConfigMissing)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)

	var data models.SiteData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Warn().Err(err).Msg("Publish request with malformed body")
		sendMessage(w, http.StatusBadRequest, constants.MsgPublishInvalidData)
		return
	}

	outcome, err := h.publishService.Publish(r.Context(), data)
	h.writeOutcome(w, outcome, err)
}

// PublishDrafts commits the current draft content
func (h *PublishHandler) PublishDrafts(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.publishService.PublishDrafts(r.Context())
	h.writeOutcome(w, outcome, err)
}

func (h *PublishHandler) writeOutcome(w http.ResponseWriter, outcome export.Outcome, err error) {
	switch {
	case err == nil:
		log.Info().Str("category", constants.LogCategoryPublish).Msg("Content published")
		sendMessage(w, http.StatusOK, outcome.Message)
	case utils.IsValidationError(err), errors.Is(err, publish.ErrInvalidSiteData):
		sendMessage(w, http.StatusBadRequest, constants.MsgPublishInvalidData)
	case errors.Is(err, publish.ErrNotConfigured):
		log.Error().Err(err).Str("category", constants.LogCategoryPublish).Msg("Publish attempted without configuration")
		sendMessage(w, http.StatusInternalServerError, constants.MsgPublishConfigMissing)
	case errors.Is(err, export.ErrInProgress):
		sendMessage(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("category", constants.LogCategoryPublish).Msg("Publish failed")
		utils.SendJSON(w, http.StatusInternalServerError, map[string]string{
			"message": constants.MsgPublishFailed,
			"error":   err.Error(),
		})
	}
}

// Status reports whether a publish or export is running and how the last one ended
func (h *PublishHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.publishService.Status())
}

// Export downloads the current drafts as the baseline source file
func (h *PublishHandler) Export(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.publishService.Export(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.Attachment(w, artifact, constants.ExportFileName, constants.ContentTypeTypeScript)
}
