package handlers

import (
	"net/http"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/gating"
	"github.com/coursecms/coursesite/internal/utils"
)

// AccessHandler answers what the course page may show to the caller
type AccessHandler struct {
	accessService AccessServiceInterface
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(accessService AccessServiceInterface) *AccessHandler {
	if accessService == nil {
		panic("accessService cannot be nil")
	}
	return &AccessHandler{accessService: accessService}
}

// GetAccess returns the gating state of the caller. It runs behind optional
// auth, so an anonymous request is answered rather than rejected.
func (h *AccessHandler) GetAccess(w http.ResponseWriter, r *http.Request) {
	var identity *gating.Identity
	if userID, ok := auth.GetUserID(r); ok {
		email, _ := auth.GetEmail(r)
		identity = &gating.Identity{UserID: userID, Email: email}
	}

	resp, err := h.accessService.Resolve(r.Context(), identity)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// GetProfile returns the profile document of the authenticated identity
func (h *AccessHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	profile, err := h.accessService.Profile(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, profile)
}
