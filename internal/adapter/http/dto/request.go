package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iho/gowallet/internal/usecase"
)

// Amount is a money amount sent as a JSON string or number. It keeps the
// raw text so validation sees exactly what the client typed.
type Amount string

// UnmarshalJSON accepts "12.50", 12.5 or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number")
	}
	*a = Amount(n.String())

	return nil
}

// OptionalID is an id sent as a JSON number or a numeric string. Null and
// the empty string mean absent.
type OptionalID struct {
	Value *int64
}

// UnmarshalJSON parses 3, "3", "" or null.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			o.Value = nil
			return nil
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id must be an integer, got %s", string(data))
	}
	o.Value = &id

	return nil
}

// MarshalJSON writes the id or null.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(*o.Value, 10)), nil
}

// SendMoneyRequest is the body of POST /api/send-money.
type SendMoneyRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	Amount         Amount `json:"amount"`
	Note           string `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SendMoneyRequest) ToUseCaseInput(userID int64) usecase.SendInput {
	return usecase.SendInput{
		UserID:         userID,
		RecipientEmail: r.RecipientEmail,
		Amount:         string(r.Amount),
		Note:           r.Note,
	}
}

// AddMoneyRequest is the body of POST /api/add-money.
type AddMoneyRequest struct {
	Amount          Amount     `json:"amount"`
	PaymentMethodID OptionalID `json:"paymentMethodId"`
}

// ToUseCaseInput converts to use case input.
func (r *AddMoneyRequest) ToUseCaseInput(userID int64) usecase.AddMoneyInput {
	return usecase.AddMoneyInput{
		UserID:          userID,
		Amount:          string(r.Amount),
		PaymentMethodID: r.PaymentMethodID.Value,
	}
}

// RequestMoneyRequest is the body of POST /api/request-money.
type RequestMoneyRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	Amount         Amount `json:"amount"`
	Note           string `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RequestMoneyRequest) ToUseCaseInput(userID int64) usecase.RequestMoneyInput {
	return usecase.RequestMoneyInput{
		UserID:         userID,
		RecipientEmail: r.RecipientEmail,
		Amount:         string(r.Amount),
		Note:           r.Note,
	}
}

// CreatePaymentMethodRequest is the body of POST /api/payment-methods.
type CreatePaymentMethodRequest struct {
	Type       string  `json:"type"`
	Provider   string  `json:"provider"`
	LastFour   string  `json:"lastFour"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	BankName   *string `json:"bankName,omitempty"`
	IsPrimary  bool    `json:"isPrimary"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentMethodRequest) ToUseCaseInput(userID int64) usecase.CreatePaymentMethodInput {
	return usecase.CreatePaymentMethodInput{
		UserID:     userID,
		Kind:       r.Type,
		Provider:   r.Provider,
		LastFour:   r.LastFour,
		ExpiryDate: r.ExpiryDate,
		BankName:   r.BankName,
		IsPrimary:  r.IsPrimary,
	}
}
