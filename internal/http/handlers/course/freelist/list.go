// Package freelist реализует HTTP-обработчик списка открытых материалов.
// Список доступен без авторизации.
package freelist

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

// Service описывает интерфейс бизнес-логики каталога материалов.
type Service interface {
	ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error)
}

// Handler обрабатывает запросы на список открытых материалов.
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
// @Summary Список открытых материалов
// @Description Возвращает метаданные материалов секции free, доступно без авторизации
// @Tags Course
// @Produce  json
// @Success 200 {object} map[string]any "Список материалов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /course/free [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.freelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.ListBySection(r.Context(), models.SectionFree)
	if err != nil {
		log.Error("failed to list free content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list content"))
		return
	}

	log.Info("free content listed", "count", len(items))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items_count": len(items),
		"items":       items,
	}))
}
