// Package booking содержит бизнес-логику заявок на консультации.
package booking

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// BookingRepository определяет методы для работы с заявками в хранилище.
type BookingRepository interface {
	// CreateBooking добавляет новую заявку и возвращает её ID.
	CreateBooking(ctx context.Context, booking models.Booking) (string, error)
	// ListBookingsByEmail возвращает заявки заявителя.
	ListBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error)
	// ListAllBookings возвращает все заявки.
	ListAllBookings(ctx context.Context) ([]*models.Booking, error)
}

// Publisher описывает публикацию уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// BookingService реализует бизнес-логику заявок на консультации.
type BookingService struct {
	repo      BookingRepository
	publisher Publisher
	log       *slog.Logger
}

// NewBookingService создает новый экземпляр BookingService.
func NewBookingService(repo BookingRepository, publisher Publisher, log *slog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create сохраняет новую заявку в статусе pending и публикует уведомление.
// Заявка может быть анонимной: email не сверяется с учётной записью,
// дата и время не проходят календарную валидацию.
func (s *BookingService) Create(ctx context.Context, booking models.Booking) (string, error) {
	booking.Status = models.BookingStatusPending

	id, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return "", err
	}
	s.log.Info("booking request created", slog.String("id", id))

	event := models.BookingEvent{
		BookingID:     id,
		UserEmail:     booking.UserEmail,
		PreferredDate: booking.PreferredDate,
		PreferredTime: booking.PreferredTime,
	}
	if booking.Notes != nil {
		event.Notes = *booking.Notes
	}
	if err := s.publisher.Publish(rabbitmq.BookingRequestedKey, event); err != nil {
		s.log.Warn("failed to publish booking notification", sl.Err(err))
	}

	return id, nil
}

// ListByEmail возвращает заявки заявителя с данным email.
func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	return s.repo.ListBookingsByEmail(ctx, email)
}

// ListAll возвращает все заявки, используется администратором.
func (s *BookingService) ListAll(ctx context.Context) ([]*models.Booking, error) {
	return s.repo.ListAllBookings(ctx)
}
