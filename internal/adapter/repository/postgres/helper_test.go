package postgres

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func fixedClock() time.Time { return testNow }

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "email", "name", "avatar", "balance", "created_at"})
}

func paymentMethodRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "type", "provider", "last_four", "expiry_date", "bank_name", "is_primary", "is_active"})
}
