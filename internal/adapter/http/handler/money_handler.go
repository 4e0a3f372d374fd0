package handler

import (
	"context"
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/usecase"
)

// MoneyService defines the behavior needed by MoneyHandler.
type MoneyService interface {
	Send(ctx context.Context, input usecase.SendInput) (*usecase.MoneyResult, error)
	AddMoney(ctx context.Context, input usecase.AddMoneyInput) (*usecase.MoneyResult, error)
	RequestMoney(ctx context.Context, input usecase.RequestMoneyInput) (*usecase.RequestMoneyResult, error)
}

// MoneyHandler handles money movement requests.
type MoneyHandler struct {
	money  MoneyService
	userID int64
}

// NewMoneyHandler creates a new MoneyHandler acting on userID.
func NewMoneyHandler(money MoneyService, userID int64) *MoneyHandler {
	return &MoneyHandler{money: money, userID: userID}
}

// SendMoney debits the user and records a send.
func (h *MoneyHandler) SendMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMoneyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.money.Send(r.Context(), req.ToUseCaseInput(h.userID))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MoneyResponse{
		Success:     true,
		Transaction: dto.TransactionFromDomain(result.Transaction),
		Message:     result.Message,
	})
}

// AddMoney credits the user and records a top-up.
func (h *MoneyHandler) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMoneyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.money.AddMoney(r.Context(), req.ToUseCaseInput(h.userID))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MoneyResponse{
		Success:     true,
		Transaction: dto.TransactionFromDomain(result.Transaction),
		Message:     result.Message,
	})
}

// RequestMoney acknowledges a money request.
func (h *MoneyHandler) RequestMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestMoneyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.money.RequestMoney(r.Context(), req.ToUseCaseInput(h.userID))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RequestMoneyResponse{
		Success: true,
		Message: result.Message,
	})
}
