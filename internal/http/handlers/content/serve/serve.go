// Package serve реализует HTTP-обработчик выдачи бинарного содержимого материала.
//
// Handler извлекает ID материала из URL, определяет пользователя по JWT
// (если он передан) и отдаёт файл, если решение о допуске положительное.
// Открытые материалы доступны без авторизации.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/entitlement"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// Service описывает интерфейс бизнес-логики выдачи содержимого.
type Service interface {
	FetchPayload(ctx context.Context, user *models.User, contentID string) (*models.ContentItem, error)
}

// ProfileService возвращает пользователя для решения о допуске.
type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*models.User, error)
}

// Handler обрабатывает запросы на выдачу содержимого материала.
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
// @Summary Получить содержимое материала
// @Description Отдаёт бинарное содержимое материала после проверки прав доступа
// @Tags Content
// @Produce  octet-stream
// @Param id path string true "ID материала"
// @Success 200 {file} binary "Содержимое файла"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 403 {object} response.ErrorResponse "Доступ к материалу запрещён"
// @Failure 404 {object} response.ErrorResponse "Материал не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /content/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.serve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	contentID := chi.URLParam(r, "id")
	if contentID == "" {
		log.Error("missing content id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing content id"))
		return
	}

	var user *models.User
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

	item, err := h.service.FetchPayload(r.Context(), user, contentID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrContentNotFound):
			log.Error("content not found", slog.String("id", contentID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("content not found"))
		case errors.Is(err, entitlement.ErrUnauthenticated):
			log.Error("unauthenticated access to gated content", slog.String("id", contentID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
		case errors.Is(err, entitlement.ErrPremiumRequired):
			log.Error("premium access denied", slog.String("id", contentID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("premium_required"))
		case errors.Is(err, entitlement.ErrNotPurchased):
			log.Error("content not purchased", slog.String("id", contentID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not_purchased"))
		default:
			log.Error("failed to fetch content", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("content served", slog.String("id", contentID), slog.String("section", item.Section))
	w.Header().Set("Content-Type", item.MediaType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", item.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(item.Payload)
}
