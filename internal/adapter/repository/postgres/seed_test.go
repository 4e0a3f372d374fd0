package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/gowallet/internal/domain"
)

func TestSeederSeed(t *testing.T) {
	pool := newMockPool(t)
	data := domain.Demo(testNow)

	pool.ExpectBegin()
	pool.ExpectExec(`INSERT INTO users`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for range data.PaymentMethods {
		pool.ExpectExec(`INSERT INTO payment_methods`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	for range data.Transactions {
		pool.ExpectExec(`INSERT INTO transactions`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	for range 3 {
		pool.ExpectExec(`SELECT setval`).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	}
	pool.ExpectCommit()

	if err := NewSeeder(pool).Seed(context.Background(), data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, pool)
}

func TestSeederRollsBackOnError(t *testing.T) {
	pool := newMockPool(t)
	insertErr := errors.New("insert failed")

	pool.ExpectBegin()
	pool.ExpectExec(`INSERT INTO users`).WillReturnError(insertErr)
	pool.ExpectRollback()

	err := NewSeeder(pool).Seed(context.Background(), domain.Demo(testNow))
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}

	assertExpectations(t, pool)
}
