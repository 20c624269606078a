// Package courseplatform предоставляет маршруты для основного приложения.
package courseplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	adminbookings "github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/bookings"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/configread"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/configupdate"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/upload"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/booking/bookingcreate"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/booking/bookinglist"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/content/serve"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/course/extralist"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/course/freelist"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/course/premiumlist"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/ordercapture"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/ordercreate"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/packages"
	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/course-platform/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/course-platform/internal/services/booking"
	contentservice "github.com/magabrotheeeer/course-platform/internal/services/content"
	paymentservice "github.com/magabrotheeeer/course-platform/internal/services/payment"
	settingsservice "github.com/magabrotheeeer/course-platform/internal/services/settings"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	authService *authservice.AuthService,
	contentService *contentservice.ContentService,
	bookingService *bookingservice.BookingService,
	paymentService *paymentservice.PaymentService,
	settingsService *settingsservice.SettingsService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/course/free", freelist.New(logger, contentService).ServeHTTP)
		r.Get("/payments/packages", packages.New(logger, paymentService).ServeHTTP)
		r.Post("/bookings", bookingcreate.New(logger, bookingService).ServeHTTP)

		// Конечные точки с необязательной авторизацией: анонимный доступ
		// разрешён, но авторизованный пользователь получает свои признаки
		// покупки и доступ к закрытым материалам.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(authService))
			r.Get("/course/extra", extralist.New(logger, contentService, authService).ServeHTTP)
			r.Get("/content/{id}", serve.New(logger, contentService, authService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/me", me.New(logger, authService).ServeHTTP)
			r.Get("/course/premium", premiumlist.New(logger, contentService, authService).ServeHTTP)
			r.Get("/bookings/my", bookinglist.New(logger, bookingService).ServeHTTP)
			r.Post("/payments/create-order", ordercreate.New(logger, paymentService).ServeHTTP)
			r.Post("/payments/capture-order/{orderRef}", ordercapture.New(logger, paymentService).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/admin/content", upload.New(logger, contentService).ServeHTTP)
				r.Get("/admin/bookings", adminbookings.New(logger, bookingService).ServeHTTP)
				r.Get("/admin/config", configread.New(logger, settingsService).ServeHTTP)
				r.Post("/admin/config", configupdate.New(logger, settingsService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
