// Package me реализует HTTP-обработчик получения профиля текущего пользователя.
package me

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

// Service описывает интерфейс бизнес-логики получения профиля.
type Service interface {
	GetProfile(ctx context.Context, email string) (*models.User, error)
}

// Handler обрабатывает запросы на получение профиля текущего пользователя.
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
// @Summary Получить профиль
// @Description Возвращает профиль текущего пользователя с купленными материалами
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/me [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

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

	user, err := h.service.GetProfile(r.Context(), email)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"email":             user.Email,
		"name":              user.Name,
		"role":              user.Role,
		"is_premium":        user.IsPremium,
		"purchased_items":   user.PurchasedItems,
		"marketing_consent": user.MarketingConsent,
		"created_at":        user.CreatedAt,
	}))
}
