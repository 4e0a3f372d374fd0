package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// Ledger implements usecase.TransactionLedger as an append-only slice.
type Ledger struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction
	nextID       int64
	now          func() time.Time
}

// NewLedger creates an empty Ledger stamped with the wall clock.
func NewLedger() *Ledger {
	return NewLedgerWithClock(func() time.Time { return time.Now().UTC() })
}

// NewLedgerWithClock creates an empty Ledger that stamps records with now.
func NewLedgerWithClock(now func() time.Time) *Ledger {
	return &Ledger{
		nextID: 1,
		now:    now,
	}
}

// Append validates the draft and stores it under the next ID.
func (l *Ledger) Append(_ context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := draft.Materialize(l.nextID, l.now())
	l.nextID++
	l.transactions = append(l.transactions, tx)

	return copyTransaction(tx), nil
}

// ListByUser returns the user's transactions, newest first and by ascending
// ID within the same timestamp.
func (l *Ledger) ListByUser(_ context.Context, userID int64) ([]*domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*domain.Transaction, 0)
	for _, tx := range l.transactions {
		if tx.UserID == userID {
			result = append(result, copyTransaction(tx))
		}
	}

	SortNewestFirst(result)

	return result, nil
}

// Len reports how many records the ledger holds across all users.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}

// Seed loads historical transactions, keeping their IDs and timestamps.
func (l *Ledger) Seed(_ context.Context, data domain.DemoDataset) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, tx := range data.Transactions {
		l.transactions = append(l.transactions, copyTransaction(tx))
		if tx.ID >= l.nextID {
			l.nextID = tx.ID + 1
		}
	}

	return nil
}

// SortNewestFirst orders transactions by CreatedAt descending, then ID ascending.
func SortNewestFirst(txs []*domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return txs[i].ID < txs[j].ID
	})
}

func copyTransaction(tx *domain.Transaction) *domain.Transaction {
	c := *tx
	if d, ok := tx.Details.(domain.AddMoneyDetails); ok && d.PaymentMethodID != nil {
		id := *d.PaymentMethodID
		d.PaymentMethodID = &id
		c.Details = d
	}
	return &c
}
