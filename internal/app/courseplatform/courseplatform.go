// Package courseplatform собирает зависимости основного HTTP-приложения:
// хранилище, кеш, брокер уведомлений, платёжного клиента и сервисы,
// и управляет жизненным циклом HTTP-сервера.
package courseplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-platform/internal/cache"
	"github.com/magabrotheeeer/course-platform/internal/config"
	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-platform/internal/migrations"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
	authservice "github.com/magabrotheeeer/course-platform/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/course-platform/internal/services/booking"
	contentservice "github.com/magabrotheeeer/course-platform/internal/services/content"
	"github.com/magabrotheeeer/course-platform/internal/services/entitlement"
	paymentservice "github.com/magabrotheeeer/course-platform/internal/services/payment"
	settingsservice "github.com/magabrotheeeer/course-platform/internal/services/settings"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// App хранит собранные зависимости и HTTP-сервер приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *storage.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New собирает все зависимости приложения из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.Db, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.ProviderAPIURL)

	entitlementEngine := entitlement.NewEngine(db, logger)
	authService := authservice.NewAuthService(db, jwtMaker)
	contentService := contentservice.NewContentService(db, cacheRedis, entitlementEngine, logger)
	bookingService := bookingservice.NewBookingService(db, publisher, logger)
	settingsService := settingsservice.NewSettingsService(db, logger)
	paymentService := paymentservice.New(db, db, entitlementEngine, providerClient, settingsService, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db,
		authService, contentService, bookingService, paymentService, settingsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.rabbitCh.Close()
		_ = a.rabbitConn.Close()
		a.db.Db.Close()
		return err
	}
}
