// Package bookings реализует HTTP-обработчик списка всех заявок для администратора.
package bookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики заявок.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Booking, error)
}

// Handler обрабатывает запросы администратора на список всех заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех заявок
// @Description Возвращает все заявки на консультации. Только для администратора
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/bookings [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.bookings"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	bookings, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list bookings"))
		return
	}

	log.Info("all bookings listed", "count", len(bookings))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"bookings_count": len(bookings),
		"bookings":       bookings,
	}))
}
