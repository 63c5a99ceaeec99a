package handlers

import (
	"net/http"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/middleware"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// AdminHandler unlocks and locks admin mode
type AdminHandler struct {
	adminService AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService AdminServiceInterface) *AdminHandler {
	if adminService == nil {
		panic("adminService cannot be nil")
	}
	return &AdminHandler{adminService: adminService}
}

// Login exchanges the access code for an admin session token. The token is
// sent back on every edit in the X-Admin-Session header.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	session, err := h.adminService.Login(req.Code)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, session)
}

// Logout ends the admin session named by the request header
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.adminService.Logout(r.Header.Get(constants.HeaderXAdminSession))

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "Admin mode ended",
	})
}

// Session reports whether the request carries a live admin session and
// whether its settings panel is open.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	admin := adminFromRequest(r)

	utils.JSON(w, http.StatusOK, map[string]bool{
		"admin":     admin.IsAdmin(),
		"panelOpen": admin.PanelOpen(),
	})
}

// TogglePanel opens or closes the settings panel of the admin session
func (h *AdminHandler) TogglePanel(w http.ResponseWriter, r *http.Request) {
	admin := adminFromRequest(r)
	if !admin.IsAdmin() {
		utils.WriteError(w, editor.ErrNotAdmin)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{
		"admin":     true,
		"panelOpen": admin.TogglePanel(),
	})
}

func adminFromRequest(r *http.Request) *editor.Admin {
	if admin, ok := middleware.AdminFromContext(r.Context()).(*editor.Admin); ok {
		return admin
	}
	return editor.NewAdmin("")
}
