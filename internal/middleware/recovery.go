package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/utils"
)

// requestID prefers chi's request id, then the auth context, then the
// client supplied header.
func requestID(r *http.Request) string {
	if id := chimiddleware.GetReqID(r.Context()); id != "" {
		return id
	}
	if id, ok := auth.GetRequestID(r); ok && id != "" {
		return id
	}
	return r.Header.Get(constants.HeaderXRequestID)
}

// Recovery turns a handler panic into a 500 response carrying the request id,
// so an admin can quote it when an edit fails. http.ErrAbortHandler is
// re-raised for net/http to handle.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				id := requestID(r)
				utils.LogPanic(rec, debug.Stack())
				log.Error().
					Str(constants.RequestIDContextKey, id).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("mode", adminStateLabel(r)).
					Msg("Panic recovered in request handler")

				var details map[string]interface{}
				if id != "" {
					details = map[string]interface{}{constants.RequestIDContextKey: id}
				}
				utils.Error(w, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, details)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// adminStateLabel reports whether the panicking request was an admin edit.
func adminStateLabel(r *http.Request) string {
	if admin := AdminFromContext(r.Context()); admin != nil && admin.IsAdmin() {
		return "admin"
	}
	return "visitor"
}
