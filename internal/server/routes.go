// Package server provides the HTTP server of the course site backend.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Routes are grouped by functionality (identity, gating, purchase, publishing,
// admin mode, drafts and content edits). Reads are public; every content
// mutation checks admin mode and publishing additionally requires a signed-in user.
package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/handlers"
	"github.com/coursecms/coursesite/internal/middleware"
	"github.com/coursecms/coursesite/internal/utils"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Accept, Authorization, Content-Type, X-CSRF-Token, X-Request-ID, X-Admin-Session"
)

// SetupRoutes configures the routes for the application.
// It creates a router hierarchy with middleware and grouped routes
// according to functionality for organized API structure.
//
// The configured routes include:
// - Health check, version and route index endpoints (unprotected)
// - Identity endpoints (signup, login, verify, logout)
// - Access decision and profile endpoints
// - Checkout and purchase webhook endpoints
// - Publishing and local export endpoints
// - Admin mode, draft slot and field-level content endpoints
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// Set before any Route so subrouters inherit them
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.MethodNotAllowed(w)
	})

	allowedOrigins := getAllowedOrigins(s.Config.CORS.AllowedOrigins)

	r.Use(corsMiddleware(allowedOrigins))

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.HealthCheck(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
				return
			}

			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})

		r.Get("/api/routes", s.GetAPIRoutes)
	})

	jwtAuth := middleware.JWTAuth(s.authProviders.JWTService)

	r.Route(constants.APIBasePath, func(r chi.Router) {
		// Identity routes
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(s.rateLimiter, constants.RateCategoryAuth))
				r.Post("/signup", s.Handlers.AuthHandler.Signup)
				r.Post("/login", s.Handlers.AuthHandler.Login)
			})

			r.Post("/logout", s.Handlers.AuthHandler.Logout)

			r.Options("/verify", handlePreflight(allowedOrigins))
			r.With(jwtAuth).Get("/verify", s.Handlers.AuthHandler.Verify)
		})

		// Gating routes
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.NoCache)
			r.With(middleware.OptionalJWTAuth(s.authProviders.JWTService)).Get("/access", s.Handlers.AccessHandler.GetAccess)
			r.With(jwtAuth).Get("/profile", s.Handlers.AccessHandler.GetProfile)
		})

		// Purchase routes keep the bare {message} body on a wrong method
		r.Route("/checkout", func(r chi.Router) {
			r.MethodNotAllowed(handlers.MessageMethodNotAllowed)
			r.Post("/", s.Handlers.PurchaseHandler.Checkout)
		})
		r.Route("/webhooks", func(r chi.Router) {
			r.MethodNotAllowed(handlers.MessageMethodNotAllowed)
			r.With(middleware.RateLimit(s.rateLimiter, constants.RateCategoryWebhook)).
				Post("/purchase", s.Handlers.PurchaseHandler.PurchaseWebhook)
		})

		// Publishing routes
		// Auth is attached per route so a wrong method gets its 405 first
		r.Route("/publish", func(r chi.Router) {
			r.MethodNotAllowed(handlers.MessageMethodNotAllowed)

			r.With(jwtAuth).Get("/status", s.Handlers.PublishHandler.Status)
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth)
				r.Use(middleware.AdminSession(s.adminService))
				r.Use(middleware.RequireAdmin)
				r.Use(middleware.RateLimit(s.rateLimiter, constants.RateCategoryPublish))
				r.Post("/", s.Handlers.PublishHandler.Publish)
				r.Post("/drafts", s.Handlers.PublishHandler.PublishDrafts)
			})
		})
		r.Get("/export", s.Handlers.PublishHandler.Export)

		// Everything below sees the admin state of the X-Admin-Session header
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminSession(s.adminService))

			r.Route("/admin", func(r chi.Router) {
				r.With(middleware.RateLimit(s.rateLimiter, constants.RateCategoryAuth)).
					Post("/login", s.Handlers.AdminHandler.Login)
				r.Post("/logout", s.Handlers.AdminHandler.Logout)
				r.Get("/session", s.Handlers.AdminHandler.Session)
				r.Post("/panel", s.Handlers.AdminHandler.TogglePanel)
			})

			r.Route("/drafts", func(r chi.Router) {
				r.Get("/", s.Handlers.DraftHandler.ListDrafts)
				r.Get("/events", s.Handlers.DraftHandler.DraftEvents)
				r.Get("/theme", s.Handlers.DraftHandler.GetTheme)
				r.Get("/{slot}", s.Handlers.DraftHandler.GetDraft)
				r.Put("/{slot}", s.Handlers.DraftHandler.ReplaceDraft)
			})

			r.Route("/content", s.contentRoutes)
		})
	})

	s.router = r
}

// contentRoutes mounts the field-level editing operations.
func (s *Server) contentRoutes(r chi.Router) {
	h := s.Handlers.ContentHandler

	r.Put("/settings/{field}", h.UpdateSiteSetting)
	r.Put("/course-info/{field}", h.UpdateCourseInfo)
	r.Put("/landing/{field}", h.UpdateLandingText)

	r.Post("/features", h.AddFeature)
	r.Put("/features/{id}/{field}", h.UpdateFeature)
	r.Delete("/features/{id}", h.DeleteFeature)

	r.Post("/testimonials", h.AddTestimonial)
	r.Put("/testimonials/{id}/{field}", h.UpdateTestimonial)
	r.Delete("/testimonials/{id}", h.DeleteTestimonial)

	r.Route("/modules", func(r chi.Router) {
		r.Post("/", h.AddModule)
		r.Delete("/{id}", h.DeleteModule)
		r.Post("/{id}/move/{direction}", h.MoveModule)
		r.Put("/{id}/embed", h.SetModuleEmbed)
		r.Delete("/{id}/embed", h.ClearModuleEmbed)
		r.Put("/{id}/{field}", h.UpdateModule)

		r.Post("/{id}/resources", h.AddResource)
		r.Put("/{id}/resources/{resourceID}/{field}", h.UpdateResource)
		r.Delete("/{id}/resources/{resourceID}", h.DeleteResource)
	})

	r.Post("/faqs", h.AddFAQ)
	r.Put("/faqs/{id}/{field}", h.UpdateFAQ)
	r.Delete("/faqs/{id}", h.DeleteFAQ)
}

// GetRouter returns the configured router.
//
// Returns:
//   - The chi.Router implementation used by the server
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// handlePreflight is an explicit handler for OPTIONS preflight requests.
//
// Parameters:
//   - allowedOrigins: A list of origins that are allowed to access the API
//
// Returns:
//   - An http.HandlerFunc that handles the OPTIONS preflight requests
func handlePreflight(allowedOrigins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if originAllowed(allowedOrigins, origin) {
			w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "300")
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// corsMiddleware creates a custom CORS middleware with the specified allowed origins.
// It adds CORS headers for allowed origins and answers OPTIONS preflight requests.
// It supports credentials mode for the auth cookie.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" || !originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", "300")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// getAllowedOrigins trims the configured CORS origins and drops empty entries.
// An empty result falls back to allowing any origin.
func getAllowedOrigins(configured []string) []string {
	origins := make([]string, 0, len(configured))
	for _, origin := range configured {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	log.Info().Strs("allowed_origins", origins).Msg("Using CORS allowed origins")
	return origins
}

// GetAPIRoutes lists every mounted route as "METHOD /path", grouped by the
// first path segment under /api.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	groups := map[string][]string{}

	walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if method == http.MethodOptions {
			return nil
		}
		route = strings.TrimSuffix(route, "/")
		if route == "" {
			route = "/"
		}

		group := "system"
		if rest, ok := strings.CutPrefix(route, constants.APIBasePath+"/"); ok {
			group, _, _ = strings.Cut(rest, "/")
		}
		groups[group] = append(groups[group], method+" "+route)
		return nil
	}

	if err := chi.Walk(s.router, walk); err != nil {
		utils.InternalServerError(w, err)
		return
	}

	for _, routes := range groups {
		sort.Strings(routes)
	}

	utils.JSON(w, http.StatusOK, groups)
}
