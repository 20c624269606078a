// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON-запрос с данными учётной записи, валидирует их,
// вызывает бизнес-логику регистрации и возвращает JWT вместе с профилем
// созданного пользователя.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/auth"
)

// Request — входные данные для регистрации
type Request struct {
	Email            string `json:"email" validate:"required,email"`
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Password         string `json:"password" validate:"required,min=6"`
	GDPRConsent      bool   `json:"gdpr_consent"`
	MarketingConsent bool   `json:"marketing_consent"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, name, rawPassword string, gdprConsent, marketingConsent bool) (string, *models.User, error)
}

// Handler обрабатывает запросы на регистрацию пользователей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Зарегистрировать пользователя
// @Description Создает учётную запись с ролью user и возвращает JWT токен
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные для регистрации"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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
	if !req.GDPRConsent {
		log.Error("gdpr consent not given")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("gdpr consent is required"))
		return
	}

	token, user, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password, req.GDPRConsent, req.MarketingConsent)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			log.Error("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already registered"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("email", user.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
		"user": map[string]any{
			"email":      user.Email,
			"name":       user.Name,
			"role":       user.Role,
			"is_premium": user.IsPremium,
		},
	}))
}
