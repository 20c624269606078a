// Package ordercreate реализует HTTP-обработчик создания платёжного заказа.
//
// Handler проверяет пакет по прайс-листу и создает транзакцию в статусе
// pending. Права пользователя на этом шаге не меняются.
package ordercreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/payment"
)

// Request — входные данные для создания заказа
type Request struct {
	PackageID string `json:"package_id" validate:"required"`
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	CreateOrder(ctx context.Context, userEmail, packageID string) (*models.Payment, error)
}

// Handler обрабатывает запросы на создание платёжного заказа.
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
// @Summary Создать платёжный заказ
// @Description Создает у провайдера заказ на оплату пакета и сохраняет транзакцию в статусе pending
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор пакета"
// @Success 200 {object} map[string]any "Созданный заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестный пакет"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /payments/create-order [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.ordercreate"

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

	email, ok := r.Context().Value(middlewarectx.UserEmail).(string)
	if !ok || email == "" {
		log.Error("user email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	order, err := h.service.CreateOrder(r.Context(), email, req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrUnknownPackage):
			log.Error("unknown package", slog.String("package_id", req.PackageID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown package"))
		case errors.Is(err, payment.ErrProviderFailure):
			log.Error("payment provider failure", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider error"))
		default:
			log.Error("failed to create order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("order created", slog.String("order_ref", order.OrderRef))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"order_ref":  order.OrderRef,
		"package_id": order.PackageID,
		"amount":     order.Amount,
		"currency":   order.Currency,
		"status":     order.Status,
	}))
}
