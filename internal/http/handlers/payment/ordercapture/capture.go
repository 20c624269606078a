// Package ordercapture реализует HTTP-обработчик подтверждения оплаты заказа.
//
// Handler подтверждает оплату у провайдера, переводит транзакцию в completed
// и применяет права пользователя. Повторное подтверждение уже завершённого
// заказа безопасно и возвращает сохранённую транзакцию.
package ordercapture

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/payment"
)

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	CaptureOrder(ctx context.Context, orderRef string) (*models.Payment, error)
}

// Handler обрабатывает запросы на подтверждение оплаты заказа.
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
// @Summary Подтвердить оплату заказа
// @Description Подтверждает оплату у провайдера, переводит транзакцию в completed и выдаёт права
// @Tags Payments
// @Produce  json
// @Param orderRef path string true "Идентификатор заказа"
// @Success 200 {object} map[string]any "Завершённая транзакция"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 409 {object} response.ErrorResponse "Транзакция уже отклонена"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /payments/capture-order/{orderRef} [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.ordercapture"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orderRef := chi.URLParam(r, "orderRef")
	if orderRef == "" {
		log.Error("missing order ref in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing order ref"))
		return
	}

	result, err := h.service.CaptureOrder(r.Context(), orderRef)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrTransactionNotFound):
			log.Error("transaction not found", slog.String("order_ref", orderRef))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("transaction not found"))
		case errors.Is(err, payment.ErrTransactionFailed):
			log.Error("transaction already failed", slog.String("order_ref", orderRef))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("transaction already failed"))
		case errors.Is(err, payment.ErrProviderFailure):
			log.Error("payment provider failure", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider error"))
		default:
			log.Error("failed to capture order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("order captured", slog.String("order_ref", orderRef), slog.String("status", result.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"order_ref":    result.OrderRef,
		"package_id":   result.PackageID,
		"status":       result.Status,
		"completed_at": result.CompletedAt,
	}))
}
