package handler

import (
	"context"
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
)

// WalletService defines the reads needed by WalletHandler.
type WalletService interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	ListPaymentMethods(ctx context.Context, userID int64) ([]*domain.PaymentMethod, error)
	ListTransactions(ctx context.Context, userID int64) ([]*domain.Transaction, error)
}

// WalletHandler serves the demo user's profile, payment methods and history.
type WalletHandler struct {
	wallet WalletService
	userID int64
}

// NewWalletHandler creates a new WalletHandler acting on userID.
func NewWalletHandler(wallet WalletService, userID int64) *WalletHandler {
	return &WalletHandler{wallet: wallet, userID: userID}
}

// GetUser returns the current user.
func (h *WalletHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.wallet.GetUser(r.Context(), h.userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// ListPaymentMethods returns the user's active payment methods.
func (h *WalletHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.wallet.ListPaymentMethods(r.Context(), h.userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentMethodsFromDomain(methods))
}

// ListTransactions returns the user's transactions, newest first.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.wallet.ListTransactions(r.Context(), h.userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}
