// Package sender содержит логику отправки почтовых уведомлений
// по событиям платформы: новая заявка на консультацию и завершённый платёж.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// SenderService отправляет письма по событиям из очередей уведомлений.
type SenderService struct {
	transport  smtp.TransportInterface
	adminEmail string
	log        *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, adminEmail string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:  transport,
		adminEmail: adminEmail,
		log:        log,
	}
}

// SendBookingRequestedNotification уведомляет администратора о новой
// заявке на консультацию.
func (s *SenderService) SendBookingRequestedNotification(body []byte) error {
	var event models.BookingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal booking event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{s.adminEmail}
	subject := "Nuova richiesta di consulenza"
	bodyText := fmt.Sprintf("Nuova richiesta di consulenza da %s.\n\nData preferita: %s\nOra preferita: %s\nNote: %s\n\nID richiesta: %s",
		event.UserEmail, event.PreferredDate, event.PreferredTime, event.Notes, event.BookingID)

	return s.sendEmail(to, subject, bodyText)
}

// SendPaymentCompletedReceipt отправляет покупателю подтверждение оплаты.
func (s *SenderService) SendPaymentCompletedReceipt(body []byte) error {
	var event models.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal payment event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{event.UserEmail}
	subject := "Conferma di pagamento"
	bodyText := fmt.Sprintf("Grazie per il tuo acquisto!\n\nPacchetto: %s\nImporto: %.2f %s\nOrdine: %s",
		event.PackageName, event.Amount, event.Currency, event.OrderRef)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	return client.Quit()
}
