package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// MoneyUseCase moves money in and out of a user's balance.
//
// Every mutating operation validates its whole input first, then appends to
// the ledger, then updates the balance. There is no compensating rollback: if
// the balance update fails, the ledger keeps the record.
type MoneyUseCase struct {
	accounts AccountStore
	ledger   TransactionLedger
	locker   UserLocker
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewMoneyUseCase creates a new MoneyUseCase.
// locker, notifier and metrics may be nil.
func NewMoneyUseCase(
	accounts AccountStore,
	ledger TransactionLedger,
	locker UserLocker,
	notifier Notifier,
	metrics *metrics.Metrics,
) *MoneyUseCase {
	return &MoneyUseCase{
		accounts: accounts,
		ledger:   ledger,
		locker:   locker,
		notifier: notifier,
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SendInput represents input for sending money.
type SendInput struct {
	UserID         int64
	RecipientEmail string
	Amount         string
	Note           string
}

// AddMoneyInput represents input for topping up a balance.
type AddMoneyInput struct {
	UserID          int64
	Amount          string
	PaymentMethodID *int64
}

// RequestMoneyInput represents input for requesting money.
type RequestMoneyInput struct {
	UserID         int64
	RecipientEmail string
	Amount         string
	Note           string
}

// MoneyResult is the outcome of a completed send or add.
type MoneyResult struct {
	Transaction *domain.Transaction
	Balance     decimal.Decimal
	Message     string
}

// RequestMoneyResult is the acknowledgement of a money request.
type RequestMoneyResult struct {
	Request *domain.MoneyRequest
	Message string
}

// Send debits the user and records a send transaction.
func (uc *MoneyUseCase) Send(ctx context.Context, input SendInput) (*MoneyResult, error) {
	start := time.Now()

	amount, err := domain.MoneyMovementInput{
		RecipientEmail: input.RecipientEmail,
		Amount:         input.Amount,
		Note:           input.Note,
	}.Validate()
	if err != nil {
		uc.recordError(OpSend, err)
		return nil, err
	}

	unlock, err := uc.lock(ctx, input.UserID)
	if err != nil {
		uc.recordError(OpSend, err)
		return nil, err
	}
	defer unlock()

	sender, err := uc.accounts.GetUser(ctx, input.UserID)
	if err != nil {
		uc.recordError(OpSend, err)
		return nil, err
	}

	if !sender.CanDebit(amount) {
		uc.recordError(OpSend, domain.ErrInsufficientBalance)
		return nil, domain.ErrInsufficientBalance
	}

	description := strings.TrimSpace(input.Note)
	if description == "" {
		description = DefaultSendDescription
	}

	recipient := strings.TrimSpace(input.RecipientEmail)

	tx, err := uc.ledger.Append(ctx, domain.TransactionDraft{
		UserID:      sender.ID,
		Amount:      amount,
		Description: description,
		Status:      domain.StatusCompleted,
		Details: domain.SendDetails{
			RecipientEmail: recipient,
			RecipientName:  recipient,
		},
	})
	if err != nil {
		uc.recordError(OpSend, err)
		return nil, fmt.Errorf("append send transaction: %w", err)
	}

	updated, err := uc.updateBalance(ctx, tx, sender.ApplyDebit(amount))
	if err != nil {
		uc.recordError(OpSend, err)
		return nil, err
	}

	uc.recordSuccess(OpSend, amount, start)

	return &MoneyResult{
		Transaction: tx,
		Balance:     updated.Balance,
		Message:     fmt.Sprintf("Successfully sent $%s to %s", domain.FormatMoney(amount), recipient),
	}, nil
}

// AddMoney credits the user and records an add_money transaction.
// A payment method id that does not resolve to one of the user's active
// methods falls back to the generic description.
func (uc *MoneyUseCase) AddMoney(ctx context.Context, input AddMoneyInput) (*MoneyResult, error) {
	start := time.Now()

	amount, err := domain.ValidateAmountField(input.Amount)
	if err != nil {
		uc.recordError(OpAddMoney, err)
		return nil, err
	}

	unlock, err := uc.lock(ctx, input.UserID)
	if err != nil {
		uc.recordError(OpAddMoney, err)
		return nil, err
	}
	defer unlock()

	user, err := uc.accounts.GetUser(ctx, input.UserID)
	if err != nil {
		uc.recordError(OpAddMoney, err)
		return nil, err
	}

	details, description, err := uc.resolveFunding(ctx, user.ID, input.PaymentMethodID)
	if err != nil {
		uc.recordError(OpAddMoney, err)
		return nil, err
	}

	tx, err := uc.ledger.Append(ctx, domain.TransactionDraft{
		UserID:      user.ID,
		Amount:      amount,
		Description: description,
		Status:      domain.StatusCompleted,
		Details:     details,
	})
	if err != nil {
		uc.recordError(OpAddMoney, err)
		return nil, fmt.Errorf("append add_money transaction: %w", err)
	}

	updated, err := uc.updateBalance(ctx, tx, user.ApplyCredit(amount))
	if err != nil {
		uc.recordError(OpAddMoney, err)
		return nil, err
	}

	uc.recordSuccess(OpAddMoney, amount, start)

	return &MoneyResult{
		Transaction: tx,
		Balance:     updated.Balance,
		Message:     fmt.Sprintf("Successfully added $%s to your account", domain.FormatMoney(amount)),
	}, nil
}

// RequestMoney acknowledges a money request. Balances and the ledger are
// never touched; a failing notifier is logged and otherwise ignored.
func (uc *MoneyUseCase) RequestMoney(ctx context.Context, input RequestMoneyInput) (*RequestMoneyResult, error) {
	amount, err := domain.MoneyMovementInput{
		RecipientEmail: input.RecipientEmail,
		Amount:         input.Amount,
		Note:           input.Note,
	}.Validate()
	if err != nil {
		uc.recordError(OpRequest, err)
		return nil, err
	}

	req := &domain.MoneyRequest{
		FromUserID:     input.UserID,
		RecipientEmail: strings.TrimSpace(input.RecipientEmail),
		Amount:         amount,
		Note:           strings.TrimSpace(input.Note),
		RequestedAt:    uc.now(),
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyMoneyRequest(ctx, req); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("recipient", req.RecipientEmail).
				Msg("money request notification failed")
		}
	}

	if uc.metrics != nil {
		uc.metrics.MoneyRequestsSent.Inc()
	}

	return &RequestMoneyResult{
		Request: req,
		Message: fmt.Sprintf("Money request sent to %s for $%s", req.RecipientEmail, domain.FormatMoney(amount)),
	}, nil
}

func (uc *MoneyUseCase) resolveFunding(ctx context.Context, userID int64, paymentMethodID *int64) (domain.AddMoneyDetails, string, error) {
	if paymentMethodID == nil {
		return domain.AddMoneyDetails{}, DefaultAddMoneyDescription, nil
	}

	methods, err := uc.accounts.ListActivePaymentMethods(ctx, userID)
	if err != nil {
		return domain.AddMoneyDetails{}, "", fmt.Errorf("list payment methods: %w", err)
	}

	for _, pm := range methods {
		if pm.ID != *paymentMethodID {
			continue
		}
		source := fmt.Sprintf("%s ****%s", pm.Label(), pm.LastFour)
		id := pm.ID
		return domain.AddMoneyDetails{PaymentMethodID: &id, Source: source}, "Added money from " + source, nil
	}

	zerolog.Ctx(ctx).Debug().
		Int64("payment_method_id", *paymentMethodID).
		Msg("payment method not found, using generic description")

	return domain.AddMoneyDetails{}, DefaultAddMoneyDescription, nil
}

// updateBalance writes the new balance for tx's owner. On failure tx stays
// in the ledger.
func (uc *MoneyUseCase) updateBalance(ctx context.Context, tx *domain.Transaction, balance decimal.Decimal) (*domain.User, error) {
	updated, err := uc.accounts.UpdateBalance(ctx, tx.UserID, balance)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Int64("transaction_id", tx.ID).
			Int64("user_id", tx.UserID).
			Msg("transaction recorded but balance not updated")
		return nil, fmt.Errorf("update balance after transaction %d: %w", tx.ID, err)
	}
	return updated, nil
}

func (uc *MoneyUseCase) lock(ctx context.Context, userID int64) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	start := time.Now()

	lockCtx, cancel := context.WithTimeout(ctx, DefaultLockTimeout)
	defer cancel()

	unlock, err := uc.locker.Lock(lockCtx, userID)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.LockErrors.Inc()
		}
		return nil, fmt.Errorf("lock user %d: %w", userID, err)
	}

	if uc.metrics != nil {
		uc.metrics.LockWaitDuration.Observe(time.Since(start).Seconds())
	}

	return unlock, nil
}

func (uc *MoneyUseCase) recordSuccess(op string, amount decimal.Decimal, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.MoneyOperations.WithLabelValues(op).Inc()
	uc.metrics.MoneyDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	uc.metrics.MoneyAmount.WithLabelValues(op).Observe(amount.InexactFloat64())
}

func (uc *MoneyUseCase) recordError(op string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.MoneyErrors.WithLabelValues(op, errorType(err)).Inc()
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "internal"
	}
}
