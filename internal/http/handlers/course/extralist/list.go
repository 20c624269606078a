// Package extralist реализует HTTP-обработчик списка дополнительных материалов
// с поштучной покупкой. Список доступен всем, признак покупки выставляется
// только для авторизованных пользователей.
package extralist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога материалов.
type Service interface {
	ListExtraForUser(ctx context.Context, user *models.User) ([]models.ContentItemView, error)
}

// ProfileService возвращает пользователя для выставления признаков покупки.
type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*models.User, error)
}

// Handler обрабатывает запросы на список дополнительных материалов.
type Handler struct {
	log      *slog.Logger
	service  Service
	profiles ProfileService
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, profiles ProfileService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		profiles: profiles,
	}
}

// ServeHTTP godoc
// @Summary Список дополнительных материалов
// @Description Возвращает материалы секции extra с признаком покупки для текущего пользователя
// @Tags Course
// @Produce  json
// @Success 200 {object} map[string]any "Список материалов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /course/extra [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.extralist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Для анонимного посетителя все признаки покупки остаются false.
	user := &models.User{}
	if email, ok := r.Context().Value(middlewarectx.UserEmail).(string); ok && email != "" {
		profile, err := h.profiles.GetProfile(r.Context(), email)
		if err != nil {
			log.Error("failed to get profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
		user = profile
	}

	items, err := h.service.ListExtraForUser(r.Context(), user)
	if err != nil {
		log.Error("failed to list extra content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list content"))
		return
	}

	log.Info("extra content listed", "count", len(items))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items_count": len(items),
		"items":       items,
	}))
}
