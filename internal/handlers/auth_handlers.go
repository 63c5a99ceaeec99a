package handlers

import (
	"net/http"
	"time"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// AuthHandler handles identity routes
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{authService: authService}
}

// Signup handles identity registration. The new identity starts unpaid.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.authService.Signup(r.Context(), &reg)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	setAuthCookie(w, r, resp)
	utils.JSON(w, http.StatusCreated, resp)
}

// Login handles identity authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &creds)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	setAuthCookie(w, r, resp)
	utils.JSON(w, http.StatusOK, resp)
}

// Verify returns the identity behind the bearer token
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	user, err := h.authService.Verify(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user":          user,
	})
}

// Logout clears the auth cookie. Access tokens are stateless and simply expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "Successfully logged out",
	})
}

func setAuthCookie(w http.ResponseWriter, r *http.Request, resp *models.AuthResponse) {
	expiry := time.Duration(resp.ExpiresIn) * time.Second
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    resp.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(expiry.Seconds()),
		Expires:  time.Now().Add(expiry),
	})
}
