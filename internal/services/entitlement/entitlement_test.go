package entitlement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SetPremium(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *MockUserRepository) AddPurchasedItem(ctx context.Context, userUID, contentID string) error {
	args := m.Called(ctx, userUID, contentID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestDecideAccess(t *testing.T) {
	premiumUser := &models.User{UID: "u1", IsPremium: true}
	regularUser := &models.User{UID: "u2"}
	buyerUser := &models.User{UID: "u3", PurchasedItems: []string{"item-1"}}

	tests := []struct {
		name    string
		user    *models.User
		item    *models.ContentItem
		wantErr error
	}{
		{
			name:    "free доступен без авторизации",
			user:    nil,
			item:    &models.ContentItem{ID: "f1", Section: models.SectionFree},
			wantErr: nil,
		},
		{
			name:    "free доступен любому пользователю",
			user:    regularUser,
			item:    &models.ContentItem{ID: "f1", Section: models.SectionFree},
			wantErr: nil,
		},
		{
			name:    "premium без авторизации",
			user:    nil,
			item:    &models.ContentItem{ID: "p1", Section: models.SectionPremium},
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "premium без оплаченного курса",
			user:    regularUser,
			item:    &models.ContentItem{ID: "p1", Section: models.SectionPremium},
			wantErr: ErrPremiumRequired,
		},
		{
			name:    "premium с оплаченным курсом",
			user:    premiumUser,
			item:    &models.ContentItem{ID: "p1", Section: models.SectionPremium},
			wantErr: nil,
		},
		{
			name:    "extra без авторизации",
			user:    nil,
			item:    &models.ContentItem{ID: "item-1", Section: models.SectionExtra},
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "extra не куплен",
			user:    regularUser,
			item:    &models.ContentItem{ID: "item-1", Section: models.SectionExtra},
			wantErr: ErrNotPurchased,
		},
		{
			name:    "extra куплен",
			user:    buyerUser,
			item:    &models.ContentItem{ID: "item-1", Section: models.SectionExtra},
			wantErr: nil,
		},
		{
			name:    "премиум не открывает extra",
			user:    premiumUser,
			item:    &models.ContentItem{ID: "item-1", Section: models.SectionExtra},
			wantErr: ErrNotPurchased,
		},
		{
			name:    "покупка не открывает premium",
			user:    buyerUser,
			item:    &models.ContentItem{ID: "p1", Section: models.SectionPremium},
			wantErr: ErrPremiumRequired,
		},
	}

	engine := NewEngine(new(MockUserRepository), newNoopLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.DecideAccess(tt.user, tt.item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDecideAccess_UnknownSection(t *testing.T) {
	engine := NewEngine(new(MockUserRepository), newNoopLogger())
	err := engine.DecideAccess(&models.User{UID: "u1"}, &models.ContentItem{ID: "x", Section: "archive"})
	require.Error(t, err)
}

func TestGrantPremium(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SetPremium", mock.Anything, "u1").Return(nil)

	engine := NewEngine(repo, newNoopLogger())
	err := engine.GrantPremium(context.Background(), "u1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGrantPremium_RepoError(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SetPremium", mock.Anything, "u1").Return(errors.New("database error"))

	engine := NewEngine(repo, newNoopLogger())
	err := engine.GrantPremium(context.Background(), "u1")

	require.Error(t, err)
}

func TestRecordPurchase(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("AddPurchasedItem", mock.Anything, "u1", "item-1").Return(nil)

	engine := NewEngine(repo, newNoopLogger())
	err := engine.RecordPurchase(context.Background(), "u1", "item-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
