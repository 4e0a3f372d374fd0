package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// AccountStore defines data access for users and their payment methods.
type AccountStore interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.NewUser) (*domain.User, error)
	// UpdateBalance replaces the stored balance and returns the updated user.
	UpdateBalance(ctx context.Context, userID int64, balance decimal.Decimal) (*domain.User, error)
	ListActivePaymentMethods(ctx context.Context, userID int64) ([]*domain.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, pm domain.NewPaymentMethod) (*domain.PaymentMethod, error)
	DeactivatePaymentMethod(ctx context.Context, userID, id int64) (*domain.PaymentMethod, error)
}

// TransactionLedger is the append-only transaction log.
type TransactionLedger interface {
	Append(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error)
	// ListByUser returns the user's transactions newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Transaction, error)
}

// UserLocker serializes balance mutations for one user.
type UserLocker interface {
	// Lock blocks until the user's lock is held or ctx is done.
	// The returned func releases the lock.
	Lock(ctx context.Context, userID int64) (unlock func(), err error)
}

// Notifier delivers money requests to their recipient.
type Notifier interface {
	NotifyMoneyRequest(ctx context.Context, req *domain.MoneyRequest) error
}
