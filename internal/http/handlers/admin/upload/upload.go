// Package upload реализует HTTP-обработчик загрузки учебного материала.
//
// Handler принимает multipart-форму с файлом и метаданными, проверяет их
// и сохраняет материал в каталоге. Доступен только администратору.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/content"
)

// maxUploadSize ограничивает размер multipart-формы при загрузке файла.
const maxUploadSize = 100 << 20

// Service описывает интерфейс бизнес-логики загрузки материалов.
type Service interface {
	Upload(ctx context.Context, item models.ContentItem) (string, error)
}

// Handler обрабатывает запросы на загрузку материалов.
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
// @Summary Загрузить материал
// @Description Сохраняет файл с метаданными в каталоге материалов. Только для администратора
// @Tags Admin
// @Accept  mpfd
// @Produce  json
// @Param title formData string true "Заголовок"
// @Param description formData string false "Описание"
// @Param content_type formData string true "Тип содержимого: video, slides, document"
// @Param section formData string true "Секция: free, premium, extra"
// @Param chapter formData string false "Глава курса"
// @Param price formData number false "Цена (обязательна для секции extra)"
// @Param file formData file true "Файл материала"
// @Success 200 {object} map[string]any "Материал загружен"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации материала"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/content [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.upload"

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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("missing file in form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	payload, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read uploaded file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read file"))
		return
	}

	item := models.ContentItem{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ContentType: r.FormValue("content_type"),
		Section:     r.FormValue("section"),
		Filename:    header.Filename,
		Payload:     payload,
		UploadedBy:  email,
	}
	if chapter := r.FormValue("chapter"); chapter != "" {
		item.Chapter = &chapter
	}
	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			log.Error("failed to parse price", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid price"))
			return
		}
		item.Price = &price
	}

	id, err := h.service.Upload(r.Context(), item)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrUnknownSection),
			errors.Is(err, content.ErrEmptyPayload),
			errors.Is(err, content.ErrPriceRequired):
			log.Error("content validation failed", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to upload content", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload content"))
		}
		return
	}

	log.Info("content uploaded", slog.String("id", id), slog.String("section", item.Section))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       id,
		"filename": item.Filename,
		"section":  item.Section,
	}))
}
