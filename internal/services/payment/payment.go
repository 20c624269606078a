// Package payment содержит бизнес-логику платёжных транзакций:
// создание заказа у провайдера, подтверждение оплаты и выдачу прав
// после завершения платежа.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// Ошибки платёжного сервиса.
var (
	// ErrUnknownPackage — пакет отсутствует в фиксированном прайс-листе.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrTransactionNotFound — транзакция с таким заказом не найдена.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransactionFailed — транзакция уже переведена в статус failed.
	ErrTransactionFailed = errors.New("transaction already failed")
	// ErrProviderFailure — платёжный провайдер вернул ошибку.
	ErrProviderFailure = errors.New("payment provider failure")
)

// PaymentRepository определяет методы для работы с транзакциями в хранилище.
type PaymentRepository interface {
	// CreatePayment сохраняет транзакцию в статусе pending и возвращает её ID.
	CreatePayment(ctx context.Context, payment models.Payment) (string, error)
	// GetPaymentByOrderRef возвращает транзакцию по идентификатору заказа.
	GetPaymentByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error)
	// MarkPaymentCompleted переводит pending-транзакцию в completed,
	// возвращает количество обновлённых строк.
	MarkPaymentCompleted(ctx context.Context, orderRef string) (int, error)
	// MarkPaymentFailed переводит транзакцию в failed.
	MarkPaymentFailed(ctx context.Context, orderRef string) error
}

// UserRepository возвращает пользователя для выдачи прав после оплаты.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Entitlements описывает выдачу премиум-доступа после завершения платежа.
type Entitlements interface {
	GrantPremium(ctx context.Context, userUID string) error
}

// ProviderClient определяет интерфейс для работы с платежным провайдером.
type ProviderClient interface {
	CreateOrder(creds paymentprovider.Credentials, reqParams paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error)
	CaptureOrder(creds paymentprovider.Credentials, orderRef string) (*paymentprovider.CaptureOrderResponse, error)
}

// CredentialsSource отдаёт актуальные учётные данные провайдера
// из конфигурации администратора.
type CredentialsSource interface {
	ProviderCredentials(ctx context.Context) (paymentprovider.Credentials, error)
}

// Publisher описывает публикацию уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// PaymentService реализует жизненный цикл платёжной транзакции.
type PaymentService struct {
	repo         PaymentRepository
	users        UserRepository
	entitlements Entitlements
	provider     ProviderClient
	credentials  CredentialsSource
	publisher    Publisher
	log          *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(repo PaymentRepository, users UserRepository, entitlements Entitlements,
	provider ProviderClient, credentials CredentialsSource, publisher Publisher,
	log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:         repo,
		users:        users,
		entitlements: entitlements,
		provider:     provider,
		credentials:  credentials,
		publisher:    publisher,
		log:          log,
	}
}

// Packages возвращает фиксированный прайс-лист пакетов.
func (s *PaymentService) Packages() []models.Package {
	return models.Packages()
}

// CreateOrder проверяет пакет по прайс-листу, получает у провайдера
// идентификатор заказа и сохраняет транзакцию в статусе pending.
// Права пользователя на этом шаге не меняются.
func (s *PaymentService) CreateOrder(ctx context.Context, userEmail, packageID string) (*models.Payment, error) {
	pkg, ok := models.FindPackage(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}

	creds, err := s.credentials.ProviderCredentials(ctx)
	if err != nil {
		return nil, err
	}

	orderResp, err := s.provider.CreateOrder(creds, paymentprovider.CreateOrderRequest{
		Amount: paymentprovider.Amount{
			Value:    fmt.Sprintf("%.2f", pkg.Price),
			Currency: pkg.Currency,
		},
		Description: pkg.Name,
		Metadata: map[string]string{
			"user_email": userEmail,
			"package_id": pkg.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	payment := models.Payment{
		OrderRef:  orderResp.OrderID,
		UserEmail: userEmail,
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Currency:  pkg.Currency,
		Status:    models.PaymentStatusPending,
	}
	id, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = id

	s.log.Info("payment order created",
		slog.String("order_ref", payment.OrderRef),
		slog.String("package_id", pkg.ID))
	return &payment, nil
}

// CaptureOrder подтверждает оплату заказа и применяет переходы состояния.
//
// Порядок фиксированный: транзакция сначала долговечно переводится
// в completed и только затем выдаются права. Если выдача прав не удалась,
// транзакция переводится в failed и ошибка возвращается вызывающему:
// статус completed означает, что права уже применены.
//
// Повторный вызов для уже завершённой транзакции — no-op: возвращается
// сохранённая транзакция, права повторно не выдаются.
func (s *PaymentService) CaptureOrder(ctx context.Context, orderRef string) (*models.Payment, error) {
	payment, err := s.repo.GetPaymentByOrderRef(ctx, orderRef)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	switch payment.Status {
	case models.PaymentStatusCompleted:
		return payment, nil
	case models.PaymentStatusFailed:
		return nil, ErrTransactionFailed
	}

	creds, err := s.credentials.ProviderCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.provider.CaptureOrder(creds, orderRef); err != nil {
		if markErr := s.repo.MarkPaymentFailed(ctx, orderRef); markErr != nil {
			s.log.Error("failed to mark transaction failed", sl.Err(markErr))
		}
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	updated, err := s.repo.MarkPaymentCompleted(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		// Конкурирующее подтверждение уже завершило транзакцию.
		return s.repo.GetPaymentByOrderRef(ctx, orderRef)
	}

	if payment.PackageID == models.PackageFullCourse {
		if err := s.grantForFullCourse(ctx, payment); err != nil {
			if markErr := s.repo.MarkPaymentFailed(ctx, orderRef); markErr != nil {
				s.log.Error("failed to mark transaction failed", sl.Err(markErr))
			}
			return nil, err
		}
	}

	s.publishReceipt(payment)

	return s.repo.GetPaymentByOrderRef(ctx, orderRef)
}

func (s *PaymentService) grantForFullCourse(ctx context.Context, payment *models.Payment) error {
	user, err := s.users.GetUserByEmail(ctx, payment.UserEmail)
	if err != nil {
		return err
	}
	return s.entitlements.GrantPremium(ctx, user.UID)
}

func (s *PaymentService) publishReceipt(payment *models.Payment) {
	pkg, _ := models.FindPackage(payment.PackageID)
	event := models.PaymentEvent{
		OrderRef:    payment.OrderRef,
		UserEmail:   payment.UserEmail,
		PackageID:   payment.PackageID,
		PackageName: pkg.Name,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
	}
	if err := s.publisher.Publish(rabbitmq.PaymentCompletedKey, event); err != nil {
		s.log.Warn("failed to publish payment notification", sl.Err(err))
	}
}
