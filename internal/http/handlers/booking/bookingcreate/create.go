// Package bookingcreate реализует HTTP-обработчик создания заявки на консультацию.
//
// Заявку может оставить и неавторизованный посетитель: email берётся из тела
// запроса, дата и время принимаются как строки без календарной валидации.
package bookingcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Request — входные данные для заявки на консультацию
type Request struct {
	Email         string  `json:"email" validate:"required,email"`
	PreferredDate string  `json:"preferred_date" validate:"required"`
	PreferredTime string  `json:"preferred_time" validate:"required"`
	Notes         *string `json:"notes,omitempty"`
}

// Service описывает интерфейс бизнес-логики заявок.
type Service interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
}

// Handler обрабатывает запросы на создание заявок на консультации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать заявку на консультацию
// @Description Сохраняет заявку в статусе pending и уведомляет администратора
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные заявки"
// @Success 200 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), models.Booking{
		UserEmail:     req.Email,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
	})
	if err != nil {
		log.Error("failed to create booking", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create booking"))
		return
	}

	log.Info("booking created", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     id,
		"status": models.BookingStatusPending,
	}))
}
