// Package configread реализует HTTP-обработчик чтения конфигурации интеграций.
// Секреты наружу не отдаются, только флаги наличия.
package configread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/services/settings"
)

// Service описывает интерфейс бизнес-логики конфигурации.
type Service interface {
	Get(ctx context.Context) (*settings.Status, error)
}

// Handler обрабатывает запросы администратора на чтение конфигурации.
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
// @Summary Состояние конфигурации интеграций
// @Description Возвращает флаги наличия учётных данных интеграций без самих секретов
// @Tags Admin
// @Produce  json
// @Success 200 {object} settings.Status "Состояние конфигурации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/config [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.configread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status, err := h.service.Get(r.Context())
	if err != nil {
		log.Error("failed to read config", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read config"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(status))
}
