package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// WalletUseCase serves the read side of a wallet plus payment method
// management.
type WalletUseCase struct {
	accounts AccountStore
	ledger   TransactionLedger
	metrics  *metrics.Metrics
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(accounts AccountStore, ledger TransactionLedger, metrics *metrics.Metrics) *WalletUseCase {
	return &WalletUseCase{
		accounts: accounts,
		ledger:   ledger,
		metrics:  metrics,
	}
}

// GetUser retrieves a user by ID.
func (uc *WalletUseCase) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.accounts.GetUser(ctx, userID)
}

// ListPaymentMethods returns the user's active payment methods.
func (uc *WalletUseCase) ListPaymentMethods(ctx context.Context, userID int64) ([]*domain.PaymentMethod, error) {
	return uc.accounts.ListActivePaymentMethods(ctx, userID)
}

// ListTransactions returns the user's transactions newest first.
func (uc *WalletUseCase) ListTransactions(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	return uc.ledger.ListByUser(ctx, userID)
}

// CreatePaymentMethodInput represents input for linking a payment method.
type CreatePaymentMethodInput struct {
	UserID     int64
	Kind       string
	Provider   string
	LastFour   string
	ExpiryDate *string
	BankName   *string
	IsPrimary  bool
}

// CreatePaymentMethod validates and stores a new active payment method.
func (uc *WalletUseCase) CreatePaymentMethod(ctx context.Context, input CreatePaymentMethodInput) (*domain.PaymentMethod, error) {
	pm := domain.NewPaymentMethod{
		UserID:     input.UserID,
		Kind:       domain.PaymentMethodKind(strings.ToLower(strings.TrimSpace(input.Kind))),
		Provider:   strings.TrimSpace(input.Provider),
		LastFour:   strings.TrimSpace(input.LastFour),
		ExpiryDate: input.ExpiryDate,
		BankName:   input.BankName,
		IsPrimary:  input.IsPrimary,
	}

	if err := pm.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.accounts.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	created, err := uc.accounts.CreatePaymentMethod(ctx, pm)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("payment_method_id", created.ID).
		Str("type", string(created.Kind)).
		Msg("payment method created")

	if uc.metrics != nil {
		uc.metrics.PaymentMethodsCreated.Inc()
	}

	return created, nil
}

// DeactivatePaymentMethod soft-deletes one of the user's payment methods.
func (uc *WalletUseCase) DeactivatePaymentMethod(ctx context.Context, userID, id int64) (*domain.PaymentMethod, error) {
	pm, err := uc.accounts.DeactivatePaymentMethod(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentMethodsDeactivated.Inc()
	}

	return pm, nil
}
