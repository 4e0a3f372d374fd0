package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyRequest is an acknowledged ask for money. It never touches a
// balance or the ledger; it is only handed to a notifier.
type MoneyRequest struct {
	FromUserID     int64
	RecipientEmail string
	Amount         decimal.Decimal
	Note           string
	RequestedAt    time.Time
}
