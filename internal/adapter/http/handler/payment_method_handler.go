package handler

import (
	"context"
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// PaymentMethodService defines the behavior needed by PaymentMethodHandler.
type PaymentMethodService interface {
	CreatePaymentMethod(ctx context.Context, input usecase.CreatePaymentMethodInput) (*domain.PaymentMethod, error)
	DeactivatePaymentMethod(ctx context.Context, userID, id int64) (*domain.PaymentMethod, error)
}

// PaymentMethodHandler links and unlinks payment methods.
type PaymentMethodHandler struct {
	methods PaymentMethodService
	userID  int64
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler acting on userID.
func NewPaymentMethodHandler(methods PaymentMethodService, userID int64) *PaymentMethodHandler {
	return &PaymentMethodHandler{methods: methods, userID: userID}
}

// Create links a new payment method.
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pm, err := h.methods.CreatePaymentMethod(r.Context(), req.ToUseCaseInput(h.userID))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentMethodFromDomain(pm))
}

// Deactivate unlinks a payment method. Its history stays intact.
func (h *PaymentMethodHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payment method id", Message: err.Error()})
		return
	}

	pm, err := h.methods.DeactivatePaymentMethod(r.Context(), h.userID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentMethodFromDomain(pm))
}
