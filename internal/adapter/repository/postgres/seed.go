package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/gowallet/internal/domain"
)

// Seeder loads the demo dataset into an empty database. Rows that already
// exist are left alone, so seeding on every start is safe.
type Seeder struct {
	db DB
}

// NewSeeder creates a new Seeder.
func NewSeeder(db DB) *Seeder {
	return &Seeder{db: db}
}

// Seed inserts the dataset in one transaction and moves the ID sequences past
// the seeded rows.
func (s *Seeder) Seed(ctx context.Context, data domain.DemoDataset) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		if data.User != nil {
			u := data.User
			if _, err := tx.Exec(ctx,
				`INSERT INTO users (id, username, email, name, avatar, balance, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO NOTHING`,
				u.ID, u.Username, u.Email, u.Name, ptrToText(u.Avatar), decimalToNumeric(u.Balance), u.CreatedAt,
			); err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
		}

		for _, pm := range data.PaymentMethods {
			if _, err := tx.Exec(ctx,
				`INSERT INTO payment_methods (id, user_id, type, provider, last_four, expiry_date, bank_name, is_primary, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (id) DO NOTHING`,
				pm.ID, pm.UserID, string(pm.Kind), pm.Provider, pm.LastFour,
				ptrToText(pm.ExpiryDate), ptrToText(pm.BankName), pm.IsPrimary, pm.IsActive,
			); err != nil {
				return fmt.Errorf("seed payment method %d: %w", pm.ID, err)
			}
		}

		for _, t := range data.Transactions {
			flat := domain.Flatten(t.Details)
			if _, err := tx.Exec(ctx,
				`INSERT INTO transactions (id, user_id, type, amount, description, recipient_name, recipient_email,
					merchant_name, order_id, payment_method_id, source_description, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				ON CONFLICT (id) DO NOTHING`,
				t.ID, t.UserID, string(t.Type()), decimalToNumeric(t.Amount), t.Description,
				ptrToText(flat.RecipientName), ptrToText(flat.RecipientEmail),
				ptrToText(flat.MerchantName), ptrToText(flat.OrderID),
				ptrToInt8(flat.PaymentMethodID), ptrToText(flat.Source),
				string(t.Status), t.CreatedAt,
			); err != nil {
				return fmt.Errorf("seed transaction %d: %w", t.ID, err)
			}
		}

		for _, table := range []string{"users", "payment_methods", "transactions"} {
			if _, err := tx.Exec(ctx, fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
				table,
			)); err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}

		return nil
	})
}
