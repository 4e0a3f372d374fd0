package dto

import (
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// UserResponse represents the wallet owner in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFromDomain converts a domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Balance:   domain.FormatMoney(u.Balance),
		CreatedAt: u.CreatedAt,
	}
}

// PaymentMethodResponse represents a payment method in API responses.
type PaymentMethodResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	Type       string  `json:"type"`
	Provider   string  `json:"provider"`
	LastFour   string  `json:"lastFour"`
	ExpiryDate *string `json:"expiryDate"`
	BankName   *string `json:"bankName"`
	IsPrimary  bool    `json:"isPrimary"`
	IsActive   bool    `json:"isActive"`
}

// PaymentMethodFromDomain converts a domain payment method to response.
func PaymentMethodFromDomain(pm *domain.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:         pm.ID,
		UserID:     pm.UserID,
		Type:       string(pm.Kind),
		Provider:   pm.Provider,
		LastFour:   pm.LastFour,
		ExpiryDate: pm.ExpiryDate,
		BankName:   pm.BankName,
		IsPrimary:  pm.IsPrimary,
		IsActive:   pm.IsActive,
	}
}

// PaymentMethodsFromDomain converts domain payment methods to responses.
func PaymentMethodsFromDomain(methods []*domain.PaymentMethod) []*PaymentMethodResponse {
	result := make([]*PaymentMethodResponse, len(methods))
	for i, pm := range methods {
		result[i] = PaymentMethodFromDomain(pm)
	}
	return result
}

// TransactionResponse is the flat wire form of a transaction. Fields that do
// not apply to the type are null.
type TransactionResponse struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	Type              string     `json:"type"`
	Amount            string     `json:"amount"`
	Description       string     `json:"description"`
	RecipientName     *string    `json:"recipientName"`
	RecipientEmail    *string    `json:"recipientEmail"`
	MerchantName      *string    `json:"merchantName"`
	OrderID           *string    `json:"orderId"`
	PaymentMethodID   OptionalID `json:"paymentMethodId"`
	SourceDescription *string    `json:"sourceDescription"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	flat := domain.Flatten(t.Details)

	return &TransactionResponse{
		ID:                t.ID,
		UserID:            t.UserID,
		Type:              string(t.Type()),
		Amount:            domain.FormatMoney(t.Amount),
		Description:       t.Description,
		RecipientName:     flat.RecipientName,
		RecipientEmail:    flat.RecipientEmail,
		MerchantName:      flat.MerchantName,
		OrderID:           flat.OrderID,
		PaymentMethodID:   OptionalID{Value: flat.PaymentMethodID},
		SourceDescription: flat.Source,
		Status:            string(t.Status),
		CreatedAt:         t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// MoneyResponse is returned by send-money and add-money.
type MoneyResponse struct {
	Success     bool                 `json:"success"`
	Transaction *TransactionResponse `json:"transaction"`
	Message     string               `json:"message"`
}

// RequestMoneyResponse is returned by request-money.
type RequestMoneyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FieldErrorResponse names one invalid input field.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Details []FieldErrorResponse `json:"details,omitempty"`
}

// ValidationErrorResponse converts a validation error to response.
func ValidationErrorResponse(err *domain.ValidationError) ErrorResponse {
	details := make([]FieldErrorResponse, len(err.Fields))
	for i, f := range err.Fields {
		details[i] = FieldErrorResponse{Field: f.Field, Message: f.Message}
	}

	message := ""
	if len(details) > 0 {
		message = details[0].Message
	}

	return ErrorResponse{
		Error:   "Validation failed",
		Message: message,
		Details: details,
	}
}
