package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the wallet owner and their current balance.
type User struct {
	ID        int64
	Username  string
	Email     string
	Name      string
	Avatar    *string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// CanDebit reports whether the balance covers amount.
func (u *User) CanDebit(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

// ApplyDebit returns the balance after removing amount, at currency scale.
func (u *User) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return RoundMoney(u.Balance.Sub(amount))
}

// ApplyCredit returns the balance after adding amount, at currency scale.
func (u *User) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return RoundMoney(u.Balance.Add(amount))
}

// NewUser is the input for creating a user record.
type NewUser struct {
	Username string
	Email    string
	Name     string
	Avatar   *string
	Balance  *decimal.Decimal
}

// PaymentMethodKind is either a card or a bank account.
type PaymentMethodKind string

const (
	PaymentMethodCard PaymentMethodKind = "card"
	PaymentMethodBank PaymentMethodKind = "bank"
)

// IsValid checks if the kind is known.
func (k PaymentMethodKind) IsValid() bool {
	return k == PaymentMethodCard || k == PaymentMethodBank
}

// PaymentMethod is a funding source linked to a user.
type PaymentMethod struct {
	ID         int64
	UserID     int64
	Kind       PaymentMethodKind
	Provider   string
	LastFour   string
	ExpiryDate *string
	BankName   *string
	IsPrimary  bool
	IsActive   bool
}

// Label is the human-readable source name used in ledger descriptions:
// the bank name when there is one, the provider otherwise.
func (pm *PaymentMethod) Label() string {
	if pm.BankName != nil && *pm.BankName != "" {
		return *pm.BankName
	}
	return pm.Provider
}

// NewPaymentMethod is the input for creating a payment method.
// A nil IsActive means active.
type NewPaymentMethod struct {
	UserID     int64
	Kind       PaymentMethodKind
	Provider   string
	LastFour   string
	ExpiryDate *string
	BankName   *string
	IsPrimary  bool
	IsActive   *bool
}

// Build materializes the record with defaults applied.
func (n NewPaymentMethod) Build(id int64) *PaymentMethod {
	active := true
	if n.IsActive != nil {
		active = *n.IsActive
	}

	return &PaymentMethod{
		ID:         id,
		UserID:     n.UserID,
		Kind:       n.Kind,
		Provider:   n.Provider,
		LastFour:   n.LastFour,
		ExpiryDate: emptyToNil(n.ExpiryDate),
		BankName:   emptyToNil(n.BankName),
		IsPrimary:  n.IsPrimary,
		IsActive:   active,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
