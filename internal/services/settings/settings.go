// Package settings содержит бизнес-логику конфигурации интеграций,
// редактируемой администратором. Конфигурация хранится единственной
// записью в базе и внедряется в зависимые сервисы явно, без глобальных
// переменных; перечитывание происходит при каждом обращении.
package settings

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
)

// ConfigRepository определяет методы для работы с конфигурацией в хранилище.
type ConfigRepository interface {
	// GetAdminConfig возвращает единственную запись конфигурации.
	GetAdminConfig(ctx context.Context) (*models.AdminConfig, error)
	// UpsertAdminConfig сохраняет конфигурацию.
	UpsertAdminConfig(ctx context.Context, cfg models.AdminConfig) error
}

// Status — состояние конфигурации для ответа администратору.
// Секреты наружу не возвращаются, только флаги наличия.
type Status struct {
	Configured               bool `json:"configured"`
	PayPalConfigured         bool `json:"paypal_configured"`
	GoogleCalendarConfigured bool `json:"google_calendar_configured"`
}

// SettingsService реализует чтение и обновление конфигурации интеграций.
type SettingsService struct {
	repo ConfigRepository
	log  *slog.Logger
}

// NewSettingsService создает новый экземпляр SettingsService.
func NewSettingsService(repo ConfigRepository, log *slog.Logger) *SettingsService {
	return &SettingsService{
		repo: repo,
		log:  log,
	}
}

// Get возвращает состояние конфигурации с флагами наличия учётных данных.
func (s *SettingsService) Get(ctx context.Context) (*Status, error) {
	cfg, err := s.repo.GetAdminConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{
		Configured:               cfg.PayPalConfigured() || cfg.CalendarConfigured(),
		PayPalConfigured:         cfg.PayPalConfigured(),
		GoogleCalendarConfigured: cfg.CalendarConfigured(),
	}, nil
}

// Update сохраняет новые учётные данные интеграций. Пустые поля
// не затирают уже сохранённые значения.
func (s *SettingsService) Update(ctx context.Context, cfg models.AdminConfig) error {
	if err := s.repo.UpsertAdminConfig(ctx, cfg); err != nil {
		return err
	}
	s.log.Info("admin config updated")
	return nil
}

// ProviderCredentials возвращает актуальные учётные данные платёжного
// провайдера. Пустые учётные данные означают sandbox-режим клиента.
func (s *SettingsService) ProviderCredentials(ctx context.Context) (paymentprovider.Credentials, error) {
	cfg, err := s.repo.GetAdminConfig(ctx)
	if err != nil {
		return paymentprovider.Credentials{}, err
	}
	creds := paymentprovider.Credentials{}
	if cfg.PayPalClientID != nil {
		creds.ClientID = *cfg.PayPalClientID
	}
	if cfg.PayPalClientSecret != nil {
		creds.ClientSecret = *cfg.PayPalClientSecret
	}
	return creds, nil
}
