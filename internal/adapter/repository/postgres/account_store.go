package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

const (
	userColumns          = "id, username, email, name, avatar, balance, created_at"
	paymentMethodColumns = "id, user_id, type, provider, last_four, expiry_date, bank_name, is_primary, is_active"
)

// AccountStore implements usecase.AccountStore on PostgreSQL.
type AccountStore struct {
	db      DB
	retrier *Retrier
	now     func() time.Time
}

// NewAccountStore creates a new AccountStore. Writes go through retrier,
// which may be nil.
func NewAccountStore(db DB, retrier *Retrier) *AccountStore {
	return &AccountStore{
		db:      db,
		retrier: retrier,
		now:     dbNow,
	}
}

// GetUser retrieves a user by ID.
func (s *AccountStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)

	user, err := scanUser(row)
	if err != nil {
		return nil, userError("get user", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *AccountStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = $1",
		domain.NormalizeEmail(email),
	)

	user, err := scanUser(row)
	if err != nil {
		return nil, userError("get user by email", err)
	}

	return user, nil
}

// CreateUser inserts a new user.
func (s *AccountStore) CreateUser(ctx context.Context, input domain.NewUser) (*domain.User, error) {
	balance := decimal.Zero
	if input.Balance != nil {
		balance = domain.RoundMoney(*input.Balance)
	}

	var user *domain.User
	err := s.retrier.Retry(ctx, func() error {
		row := s.db.QueryRow(ctx,
			`INSERT INTO users (username, email, name, avatar, balance, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+userColumns,
			input.Username,
			input.Email,
			input.Name,
			ptrToText(input.Avatar),
			decimalToNumeric(balance),
			s.now(),
		)

		var err error
		user, err = scanUser(row)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateBalance replaces a user's balance.
func (s *AccountStore) UpdateBalance(ctx context.Context, userID int64, balance decimal.Decimal) (*domain.User, error) {
	var user *domain.User
	err := s.retrier.Retry(ctx, func() error {
		row := s.db.QueryRow(ctx,
			"UPDATE users SET balance = $2 WHERE id = $1 RETURNING "+userColumns,
			userID,
			decimalToNumeric(domain.RoundMoney(balance)),
		)

		var err error
		user, err = scanUser(row)
		return err
	})
	if err != nil {
		return nil, userError("update balance", err)
	}

	return user, nil
}

// ListActivePaymentMethods returns the user's active methods in ID order.
func (s *AccountStore) ListActivePaymentMethods(ctx context.Context, userID int64) ([]*domain.PaymentMethod, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+paymentMethodColumns+" FROM payment_methods WHERE user_id = $1 AND is_active ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]*domain.PaymentMethod, 0)
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	return methods, nil
}

// CreatePaymentMethod inserts a payment method.
func (s *AccountStore) CreatePaymentMethod(ctx context.Context, input domain.NewPaymentMethod) (*domain.PaymentMethod, error) {
	pm := input.Build(0)

	var created *domain.PaymentMethod
	err := s.retrier.Retry(ctx, func() error {
		row := s.db.QueryRow(ctx,
			`INSERT INTO payment_methods (user_id, type, provider, last_four, expiry_date, bank_name, is_primary, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+paymentMethodColumns,
			pm.UserID,
			string(pm.Kind),
			pm.Provider,
			pm.LastFour,
			ptrToText(pm.ExpiryDate),
			ptrToText(pm.BankName),
			pm.IsPrimary,
			pm.IsActive,
		)

		var err error
		created, err = scanPaymentMethod(row)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	return created, nil
}

// DeactivatePaymentMethod clears the active flag of one of the user's methods.
func (s *AccountStore) DeactivatePaymentMethod(ctx context.Context, userID, id int64) (*domain.PaymentMethod, error) {
	var pm *domain.PaymentMethod
	err := s.retrier.Retry(ctx, func() error {
		row := s.db.QueryRow(ctx,
			"UPDATE payment_methods SET is_active = FALSE WHERE id = $1 AND user_id = $2 RETURNING "+paymentMethodColumns,
			id,
			userID,
		)

		var err error
		pm, err = scanPaymentMethod(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to deactivate payment method: %w", err)
	}

	return pm, nil
}

func userError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user    domain.User
		avatar  pgtype.Text
		balance pgtype.Numeric
	)

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&avatar,
		&balance,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	user.Avatar = textToPtr(avatar)
	user.Balance = domain.RoundMoney(numericToDecimal(balance))

	return &user, nil
}

func scanPaymentMethod(row pgx.Row) (*domain.PaymentMethod, error) {
	var (
		pm         domain.PaymentMethod
		kind       string
		expiryDate pgtype.Text
		bankName   pgtype.Text
	)

	if err := row.Scan(
		&pm.ID,
		&pm.UserID,
		&kind,
		&pm.Provider,
		&pm.LastFour,
		&expiryDate,
		&bankName,
		&pm.IsPrimary,
		&pm.IsActive,
	); err != nil {
		return nil, err
	}

	pm.Kind = domain.PaymentMethodKind(kind)
	pm.ExpiryDate = textToPtr(expiryDate)
	pm.BankName = textToPtr(bankName)

	return &pm, nil
}
