// Package configupdate реализует HTTP-обработчик обновления конфигурации интеграций.
// Пустые поля запроса не затирают уже сохранённые секреты.
package configupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Request — входные данные для обновления конфигурации
type Request struct {
	PayPalClientID            *string `json:"paypal_client_id,omitempty"`
	PayPalClientSecret        *string `json:"paypal_client_secret,omitempty"`
	GoogleCalendarCredentials *string `json:"google_calendar_credentials,omitempty"`
}

// Service описывает интерфейс бизнес-логики конфигурации.
type Service interface {
	Update(ctx context.Context, cfg models.AdminConfig) error
}

// Handler обрабатывает запросы администратора на обновление конфигурации.
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
// @Summary Обновить конфигурацию интеграций
// @Description Сохраняет учётные данные платёжного провайдера и календаря. Только для администратора
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётные данные интеграций"
// @Success 200 {object} response.Response "Конфигурация обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/config [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.configupdate"

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

	err := h.service.Update(r.Context(), models.AdminConfig{
		PayPalClientID:            req.PayPalClientID,
		PayPalClientSecret:        req.PayPalClientSecret,
		GoogleCalendarCredentials: req.GoogleCalendarCredentials,
	})
	if err != nil {
		log.Error("failed to update config", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update config"))
		return
	}

	log.Info("admin config updated")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "config updated successfully",
	}))
}
