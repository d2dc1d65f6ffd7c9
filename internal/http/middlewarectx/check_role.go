package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/models"
)

// RequireRole возвращает middleware, пропускающий запрос только если
// роль из контекста входит в allowed. Иначе — 403 Forbidden.
func RequireRole(log *slog.Logger, allowed ...models.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(models.UserType)
			if !ok {
				log.Error("role missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, "not authenticated"))
				return
			}
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Error("role is not permitted", slog.String("role", string(role)))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error(response.CodeForbidden, "access denied for this role"))
		})
	}
}
