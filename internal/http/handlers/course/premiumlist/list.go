// Package premiumlist реализует HTTP-обработчик списка материалов полного курса.
// Список доступен только пользователям с оплаченным полным курсом.
package premiumlist

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
	ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error)
}

// ProfileService возвращает пользователя для проверки премиум-доступа.
type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*models.User, error)
}

// Handler обрабатывает запросы на список материалов полного курса.
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
// @Summary Список материалов полного курса
// @Description Возвращает метаданные материалов секции premium для пользователей с оплаченным курсом
// @Tags Course
// @Produce  json
// @Success 200 {object} map[string]any "Список материалов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Полный курс не оплачен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /course/premium [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.premiumlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.UserEmail).(string)
	if !ok || email == "" {
		log.Error("user email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.profiles.GetProfile(r.Context(), email)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if !user.IsPremium {
		log.Error("premium access denied", slog.String("email", email))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("premium_required"))
		return
	}

	items, err := h.service.ListBySection(r.Context(), models.SectionPremium)
	if err != nil {
		log.Error("failed to list premium content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list content"))
		return
	}

	log.Info("premium content listed", "count", len(items))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items_count": len(items),
		"items":       items,
	}))
}
