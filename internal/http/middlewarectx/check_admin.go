package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// AdminOnlyMiddleware создает middleware, пропускающий только пользователей с ролью admin.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if role != models.RoleAdmin {
				log.Error("admin role required, access denied")
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
