// Package storage реализует хранилище данных на основе PostgreSQL
// для платформы онлайн-курса. Предоставляет методы работы с пользователями,
// каталогом материалов, заявками на консультации, платёжными транзакциями
// и конфигурацией администратора.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Ошибки уровня хранилища, проверяемые бизнес-логикой через errors.Is.
var (
	// ErrEmailTaken возвращается при регистрации на уже занятый email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrContentNotFound возвращается, если материал не найден.
	ErrContentNotFound = errors.New("content not found")
	// ErrTransactionNotFound возвращается, если транзакция не найдена.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolation = "23505"

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	Db *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		Db: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.Db.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// ===== USER METHODS =====

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// При попытке повторной регистрации на тот же email возвращает ErrEmailTaken.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, name, password_hash, role, is_premium,
			      gdpr_consent, marketing_consent)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	if err := s.Db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Role, user.IsPremium,
		user.GDPRConsent, user.MarketingConsent).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email вместе с множеством
// купленных материалов.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, is_premium,
			      gdpr_consent, marketing_consent, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.Db.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.IsPremium, &u.GDPRConsent, &u.MarketingConsent, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	purchases, err := s.listPurchases(ctx, u.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.PurchasedItems = purchases
	return u, nil
}

func (s *Storage) listPurchases(ctx context.Context, userUID string) ([]string, error) {
	rows, err := s.Db.QueryContext(ctx,
		`SELECT content_id FROM user_purchases WHERE user_uid = $1`, userUID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}

// SetPremium включает пользователю премиум-доступ. Повторный вызов
// не меняет состояние.
func (s *Storage) SetPremium(ctx context.Context, userUID string) error {
	const op = "storage.SetPremium"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.Db.ExecContext(ctx,
		`UPDATE users SET is_premium = TRUE WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// AddPurchasedItem добавляет материал в множество купленных пользователем.
// Повторная вставка того же материала игнорируется.
func (s *Storage) AddPurchasedItem(ctx context.Context, userUID, contentID string) error {
	const op = "storage.AddPurchasedItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_purchases (user_uid, content_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, content_id) DO NOTHING`
	if _, err := s.Db.ExecContext(ctx, query, userUID, contentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ===== CONTENT METHODS =====

// CreateContent вставляет новый материал каталога и возвращает его ID.
func (s *Storage) CreateContent(ctx context.Context, item models.ContentItem) (string, error) {
	const op = "storage.CreateContent"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO content_items (title, description, content_type, section,
			      chapter, price, filename, payload, uploaded_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID string
	err := s.Db.QueryRowContext(ctx, query,
		item.Title, item.Description, item.ContentType, item.Section,
		item.Chapter, item.Price, item.Filename, item.Payload, item.UploadedBy).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetContent возвращает материал вместе с бинарным содержимым.
func (s *Storage) GetContent(ctx context.Context, contentID string) (*models.ContentItem, error) {
	const op = "storage.GetContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, content_type, section, chapter,
			      price, filename, payload, uploaded_by, created_at
			  FROM content_items WHERE id = $1`
	row := s.Db.QueryRowContext(ctx, query, contentID)

	var item models.ContentItem
	var chapter sql.NullString
	var price sql.NullFloat64
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.ContentType,
		&item.Section, &chapter, &price, &item.Filename, &item.Payload,
		&item.UploadedBy, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrContentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if chapter.Valid {
		item.Chapter = &chapter.String
	}
	if price.Valid {
		item.Price = &price.Float64
	}
	return &item, nil
}

// ListContentBySection возвращает метаданные материалов секции
// без бинарного содержимого, в порядке загрузки.
func (s *Storage) ListContentBySection(ctx context.Context, section string) ([]*models.ContentItem, error) {
	const op = "storage.ListContentBySection"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, content_type, section, chapter,
			      price, filename, uploaded_by, created_at
			  FROM content_items
			  WHERE section = $1
			  ORDER BY created_at`
	rows, err := s.Db.QueryContext(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var items []*models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		var chapter sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ContentType,
			&item.Section, &chapter, &price, &item.Filename,
			&item.UploadedBy, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if chapter.Valid {
			item.Chapter = &chapter.String
		}
		if price.Valid {
			item.Price = &price.Float64
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// ===== BOOKING METHODS =====

// CreateBooking вставляет новую заявку на консультацию и возвращает её ID.
func (s *Storage) CreateBooking(ctx context.Context, booking models.Booking) (string, error) {
	const op = "storage.CreateBooking"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO bookings (user_email, preferred_date, preferred_time, notes, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err := s.Db.QueryRowContext(ctx, query,
		booking.UserEmail, booking.PreferredDate, booking.PreferredTime,
		booking.Notes, booking.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListBookingsByEmail возвращает заявки заявителя с данным email.
func (s *Storage) ListBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	const op = "storage.ListBookingsByEmail"
	return s.listBookings(ctx, op,
		`SELECT id, user_email, preferred_date, preferred_time, notes, status, created_at
		 FROM bookings WHERE user_email = $1 ORDER BY created_at`, email)
}

// ListAllBookings возвращает все заявки на консультации.
func (s *Storage) ListAllBookings(ctx context.Context) ([]*models.Booking, error) {
	const op = "storage.ListAllBookings"
	return s.listBookings(ctx, op,
		`SELECT id, user_email, preferred_date, preferred_time, notes, status, created_at
		 FROM bookings ORDER BY created_at`)
}

func (s *Storage) listBookings(ctx context.Context, op, query string, args ...any) ([]*models.Booking, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		var notes sql.NullString
		if err := rows.Scan(&b.ID, &b.UserEmail, &b.PreferredDate, &b.PreferredTime,
			&notes, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if notes.Valid {
			b.Notes = &notes.String
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bookings, nil
}

// ===== PAYMENT METHODS =====

// CreatePayment вставляет транзакцию в статусе pending и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (string, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (order_ref, user_email, package_id, amount, currency, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err := s.Db.QueryRowContext(ctx, query,
		payment.OrderRef, payment.UserEmail, payment.PackageID,
		payment.Amount, payment.Currency, payment.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByOrderRef возвращает транзакцию по идентификатору заказа провайдера.
func (s *Storage) GetPaymentByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error) {
	const op = "storage.GetPaymentByOrderRef"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, order_ref, user_email, package_id, amount, currency,
			      status, created_at, completed_at
			  FROM payments WHERE order_ref = $1`
	row := s.Db.QueryRowContext(ctx, query, orderRef)

	var p models.Payment
	var completedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.OrderRef, &p.UserEmail, &p.PackageID, &p.Amount,
		&p.Currency, &p.Status, &p.CreatedAt, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	return &p, nil
}

// MarkPaymentCompleted переводит транзакцию из pending в completed
// и проставляет время завершения. Возвращает количество обновлённых строк:
// ноль означает, что транзакция уже не в статусе pending.
func (s *Storage) MarkPaymentCompleted(ctx context.Context, orderRef string) (int, error) {
	const op = "storage.MarkPaymentCompleted"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1, completed_at = NOW()
			  WHERE order_ref = $2 AND status = $3`
	result, err := s.Db.ExecContext(ctx, query,
		models.PaymentStatusCompleted, orderRef, models.PaymentStatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkPaymentFailed переводит транзакцию в статус failed.
func (s *Storage) MarkPaymentFailed(ctx context.Context, orderRef string) error {
	const op = "storage.MarkPaymentFailed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET status = $1 WHERE order_ref = $2`
	if _, err := s.Db.ExecContext(ctx, query, models.PaymentStatusFailed, orderRef); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ===== ADMIN CONFIG METHODS =====

// GetAdminConfig возвращает единственную запись конфигурации интеграций.
// Если запись ещё не создана, возвращает пустую конфигурацию.
func (s *Storage) GetAdminConfig(ctx context.Context) (*models.AdminConfig, error) {
	const op = "storage.GetAdminConfig"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT paypal_client_id, paypal_client_secret, google_calendar_credentials, updated_at
			  FROM admin_config WHERE config_type = 'main'`
	row := s.Db.QueryRowContext(ctx, query)

	var cfg models.AdminConfig
	var clientID, clientSecret, calendar sql.NullString
	if err := row.Scan(&clientID, &clientSecret, &calendar, &cfg.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.AdminConfig{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if clientID.Valid {
		cfg.PayPalClientID = &clientID.String
	}
	if clientSecret.Valid {
		cfg.PayPalClientSecret = &clientSecret.String
	}
	if calendar.Valid {
		cfg.GoogleCalendarCredentials = &calendar.String
	}
	return &cfg, nil
}

// UpsertAdminConfig сохраняет конфигурацию интеграций. Пустые поля запроса
// не затирают уже сохранённые значения.
func (s *Storage) UpsertAdminConfig(ctx context.Context, cfg models.AdminConfig) error {
	const op = "storage.UpsertAdminConfig"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO admin_config (config_type, paypal_client_id, paypal_client_secret,
			      google_calendar_credentials, updated_at)
			  VALUES ('main', $1, $2, $3, NOW())
			  ON CONFLICT (config_type) DO UPDATE SET
			      paypal_client_id = COALESCE(EXCLUDED.paypal_client_id, admin_config.paypal_client_id),
			      paypal_client_secret = COALESCE(EXCLUDED.paypal_client_secret, admin_config.paypal_client_secret),
			      google_calendar_credentials = COALESCE(EXCLUDED.google_calendar_credentials, admin_config.google_calendar_credentials),
			      updated_at = NOW()`
	if _, err := s.Db.ExecContext(ctx, query,
		cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.GoogleCalendarCredentials); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
