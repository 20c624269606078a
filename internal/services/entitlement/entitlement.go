// Package entitlement содержит бизнес-логику прав доступа к материалам:
// решение о допуске пользователя к материалу и переходы состояния
// при покупках (включение премиума, пометка купленного материала).
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Причины отказа в доступе.
var (
	// ErrUnauthenticated — доступ к закрытой секции без авторизации.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrPremiumRequired — для секции premium нужен оплаченный полный курс.
	ErrPremiumRequired = errors.New("premium_required")
	// ErrNotPurchased — материал секции extra не куплен пользователем.
	ErrNotPurchased = errors.New("not_purchased")
)

// UserRepository описывает операции хранилища, меняющие права пользователя.
type UserRepository interface {
	// SetPremium включает пользователю премиум-доступ, идемпотентно.
	SetPremium(ctx context.Context, userUID string) error
	// AddPurchasedItem добавляет материал в множество купленных, идемпотентно.
	AddPurchasedItem(ctx context.Context, userUID, contentID string) error
}

// Engine принимает решения о доступе и применяет переходы состояния прав.
type Engine struct {
	users UserRepository
	log   *slog.Logger
}

// NewEngine создает новый экземпляр Engine.
func NewEngine(users UserRepository, log *slog.Logger) *Engine {
	return &Engine{
		users: users,
		log:   log,
	}
}

// DecideAccess решает, может ли пользователь получить материал.
// Возвращает nil при допуске и одну из ошибок отказа иначе.
// Для секции free допуск безусловный, user может быть nil.
// Решение не имеет побочных эффектов.
func (e *Engine) DecideAccess(user *models.User, item *models.ContentItem) error {
	if item.Section == models.SectionFree {
		return nil
	}
	if user == nil {
		return ErrUnauthenticated
	}
	switch item.Section {
	case models.SectionPremium:
		if !user.IsPremium {
			return ErrPremiumRequired
		}
		return nil
	case models.SectionExtra:
		if !user.HasPurchased(item.ID) {
			return ErrNotPurchased
		}
		return nil
	default:
		return fmt.Errorf("unknown content section: %s", item.Section)
	}
}

// GrantPremium включает пользователю премиум-доступ. Операция идемпотентна:
// повторный вызов не меняет состояние. Вызывается только после завершённой
// оплаты пакета полного курса.
func (e *Engine) GrantPremium(ctx context.Context, userUID string) error {
	if err := e.users.SetPremium(ctx, userUID); err != nil {
		return err
	}
	e.log.Info("premium access granted", slog.String("user_uid", userUID))
	return nil
}

// RecordPurchase добавляет материал в множество купленных пользователем.
// Семантика множества: повторная покупка того же материала не создаёт
// дубликата. Конечной точки, вызывающей эту операцию, пока нет —
// поштучные покупки ждут решения по продукту.
func (e *Engine) RecordPurchase(ctx context.Context, userUID, contentID string) error {
	if err := e.users.AddPurchasedItem(ctx, userUID, contentID); err != nil {
		return err
	}
	e.log.Info("purchase recorded",
		slog.String("user_uid", userUID),
		slog.String("content_id", contentID))
	return nil
}
