package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/go-chi/chi"
)

// StaffChecker reports whether an identity belongs to the support staff group.
type StaffChecker interface {
	IsStaff(ctx context.Context, id internal.Identity) (bool, error)
}

// RequireStaff gates a route to support staff. The check lives only at this surface;
// the store does not enforce channel visibility.
func RequireStaff(checker StaffChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken))
				return
			}

			staff, err := checker.IsStaff(r.Context(), id)
			if err != nil {
				logger.Error("staff check failed", "user_id", id.UserID, "error", err)
				writeAppError(w, internal.NewInternalError("internal server error", nil))
				return
			}

			if !staff {
				logger.Warn("access denied: caller is not support staff",
					"user_id", id.UserID,
					"name", id.Name,
					"path", r.URL.Path)
				writeAppError(w, internal.ErrStaffOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrStaff lets callers act on their own user record. Anyone else must be
// support staff. Bootstrap sessions pass so the first credentials can be set.
func RequireSelfOrStaff(checker StaffChecker, param string, logger *slog.Logger) func(http.Handler) http.Handler {
	staffOnly := RequireStaff(checker, logger)
	return func(next http.Handler) http.Handler {
		gated := staffOnly(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken))
				return
			}

			if id.Bootstrap {
				logger.Warn("bootstrap session acting on a user record", "name", id.Name, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			target, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err == nil && id.UserID != 0 && target == id.UserID {
				next.ServeHTTP(w, r)
				return
			}

			gated.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
