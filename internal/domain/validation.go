package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNoteLength     = 255
	MaxProviderLength = 64
	MaxBankNameLength = 128
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	lastFourRegex = regexp.MustCompile(`^[0-9]{4}$`)
	expiryRegex   = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// IsValidEmail validates email format.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(NormalizeEmail(email))
}

// MoneyMovementInput is the common shape of send and request inputs.
type MoneyMovementInput struct {
	RecipientEmail string
	Amount         string
	Note           string
}

// Validate checks recipient, amount and note together so that the caller
// gets every field problem at once. It returns the parsed amount.
func (in MoneyMovementInput) Validate() (decimal.Decimal, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(in.RecipientEmail) == "" {
		verr.Add("recipientEmail", "recipient email is required")
	} else if !IsValidEmail(in.RecipientEmail) {
		verr.Add("recipientEmail", "Please enter a valid email address")
	}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		verr.Add("amount", err.Error())
	}

	if len(in.Note) > MaxNoteLength {
		verr.Add("note", "note is too long")
	}

	if err := verr.ErrOrNil(); err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// ValidateAmountField parses amount, reporting failure as a ValidationError.
func ValidateAmountField(raw string) (decimal.Decimal, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		verr := &ValidationError{}
		verr.Add("amount", err.Error())
		return decimal.Zero, verr
	}
	return amount, nil
}

// Validate checks a payment method before it is stored.
func (n NewPaymentMethod) Validate() error {
	verr := &ValidationError{}

	if !n.Kind.IsValid() {
		verr.Add("type", "type must be card or bank")
	}

	provider := strings.TrimSpace(n.Provider)
	if provider == "" {
		verr.Add("provider", "provider is required")
	} else if len(provider) > MaxProviderLength {
		verr.Add("provider", "provider is too long")
	}

	if !lastFourRegex.MatchString(n.LastFour) {
		verr.Add("lastFour", "lastFour must be exactly 4 digits")
	}

	if n.ExpiryDate != nil && *n.ExpiryDate != "" && !expiryRegex.MatchString(*n.ExpiryDate) {
		verr.Add("expiryDate", "expiryDate must be MM/YY")
	}

	if n.Kind == PaymentMethodBank && (n.BankName == nil || strings.TrimSpace(*n.BankName) == "") {
		verr.Add("bankName", "bankName is required for bank accounts")
	}

	if n.BankName != nil && len(*n.BankName) > MaxBankNameLength {
		verr.Add("bankName", "bankName is too long")
	}

	return verr.ErrOrNil()
}
