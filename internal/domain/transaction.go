package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells which way money moved.
type TransactionType string

const (
	TransactionSend     TransactionType = "send"
	TransactionReceive  TransactionType = "receive"
	TransactionPurchase TransactionType = "purchase"
	TransactionAddMoney TransactionType = "add_money"
)

// IsDebit reports whether the type reduces the owner's balance.
func (t TransactionType) IsDebit() bool {
	return t == TransactionSend || t == TransactionPurchase
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// IsValid checks if the status is known.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Details holds the fields that only make sense for one transaction type.
// The concrete type decides the transaction's TransactionType.
type Details interface {
	Type() TransactionType
	isDetails()
}

// SendDetails describes money sent to someone else.
type SendDetails struct {
	RecipientEmail string
	RecipientName  string
}

// ReceiveDetails describes money received from someone else.
type ReceiveDetails struct {
	SenderName  string
	SenderEmail string
}

// PurchaseDetails describes a card purchase at a merchant.
type PurchaseDetails struct {
	MerchantName string
	OrderID      string
}

// AddMoneyDetails describes a top-up. PaymentMethodID is nil when the
// funding source could not be resolved.
type AddMoneyDetails struct {
	PaymentMethodID *int64
	Source          string
}

func (SendDetails) Type() TransactionType     { return TransactionSend }
func (ReceiveDetails) Type() TransactionType  { return TransactionReceive }
func (PurchaseDetails) Type() TransactionType { return TransactionPurchase }
func (AddMoneyDetails) Type() TransactionType { return TransactionAddMoney }

func (SendDetails) isDetails()     {}
func (ReceiveDetails) isDetails()  {}
func (PurchaseDetails) isDetails() {}
func (AddMoneyDetails) isDetails() {}

// Transaction is an immutable ledger record. Amount is always a positive
// magnitude; direction comes from the type.
type Transaction struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Description string
	Status      TransactionStatus
	Details     Details
	CreatedAt   time.Time
}

// Type returns the transaction type implied by its details.
func (t *Transaction) Type() TransactionType {
	return t.Details.Type()
}

// SignedAmount returns the amount with the sign its type implies.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type().IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionDraft is what callers hand to the ledger; the ledger assigns
// the id and creation time.
type TransactionDraft struct {
	UserID      int64
	Amount      decimal.Decimal
	Description string
	Status      TransactionStatus
	Details     Details
}

// Validate checks the draft before it is appended.
func (d *TransactionDraft) Validate() error {
	if d.Details == nil {
		return fmt.Errorf("%w: details are required", ErrInvalidDraft)
	}

	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidDraft)
	}

	if !d.Amount.Equal(RoundMoney(d.Amount)) {
		return fmt.Errorf("%w: amount has more than %d decimal places", ErrInvalidDraft, CurrencyScale)
	}

	if d.Status != "" && !d.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDraft, d.Status)
	}

	return nil
}

// Materialize builds the stored record, defaulting status to completed.
func (d *TransactionDraft) Materialize(id int64, createdAt time.Time) *Transaction {
	status := d.Status
	if status == "" {
		status = StatusCompleted
	}

	return &Transaction{
		ID:          id,
		UserID:      d.UserID,
		Amount:      RoundMoney(d.Amount),
		Description: d.Description,
		Status:      status,
		Details:     d.Details,
		CreatedAt:   createdAt,
	}
}

// FlatDetails is the nullable-column view of Details used by storage rows
// and the JSON wire format. For receive, the counterparty goes into the
// recipient columns.
type FlatDetails struct {
	RecipientName   *string
	RecipientEmail  *string
	MerchantName    *string
	OrderID         *string
	PaymentMethodID *int64
	Source          *string
}

// Flatten converts details into nullable columns.
func Flatten(d Details) FlatDetails {
	switch v := d.(type) {
	case SendDetails:
		return FlatDetails{RecipientName: optional(v.RecipientName), RecipientEmail: optional(v.RecipientEmail)}
	case ReceiveDetails:
		return FlatDetails{RecipientName: optional(v.SenderName), RecipientEmail: optional(v.SenderEmail)}
	case PurchaseDetails:
		return FlatDetails{MerchantName: optional(v.MerchantName), OrderID: optional(v.OrderID)}
	case AddMoneyDetails:
		return FlatDetails{PaymentMethodID: v.PaymentMethodID, Source: optional(v.Source)}
	default:
		return FlatDetails{}
	}
}

// Unflatten rebuilds typed details from a stored type and its columns.
func Unflatten(t TransactionType, f FlatDetails) (Details, error) {
	switch t {
	case TransactionSend:
		return SendDetails{RecipientEmail: deref(f.RecipientEmail), RecipientName: deref(f.RecipientName)}, nil
	case TransactionReceive:
		return ReceiveDetails{SenderName: deref(f.RecipientName), SenderEmail: deref(f.RecipientEmail)}, nil
	case TransactionPurchase:
		return PurchaseDetails{MerchantName: deref(f.MerchantName), OrderID: deref(f.OrderID)}, nil
	case TransactionAddMoney:
		return AddMoneyDetails{PaymentMethodID: f.PaymentMethodID, Source: deref(f.Source)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, t)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
