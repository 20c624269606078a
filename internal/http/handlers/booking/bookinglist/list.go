// Package bookinglist реализует HTTP-обработчик списка заявок текущего пользователя.
package bookinglist

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

// Service описывает интерфейс бизнес-логики заявок.
type Service interface {
	ListByEmail(ctx context.Context, email string) ([]*models.Booking, error)
}

// Handler обрабатывает запросы на список заявок пользователя.
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
// @Summary Список заявок пользователя
// @Description Возвращает заявки на консультации текущего пользователя
// @Tags Bookings
// @Produce  json
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bookings/my [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.list"

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

	bookings, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list bookings"))
		return
	}

	log.Info("bookings listed", "count", len(bookings))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"bookings_count": len(bookings),
		"bookings":       bookings,
	}))
}
