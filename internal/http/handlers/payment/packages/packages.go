// Package packages реализует HTTP-обработчик прайс-листа пакетов курса.
package packages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики прайс-листа.
type Service interface {
	Packages() []models.Package
}

// Handler обрабатывает запросы на прайс-лист пакетов.
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
// @Summary Прайс-лист пакетов
// @Description Возвращает фиксированный список продаваемых пакетов курса
// @Tags Payments
// @Produce  json
// @Success 200 {object} map[string]any "Список пакетов"
// @Router /payments/packages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"packages": h.service.Packages(),
	}))
}
