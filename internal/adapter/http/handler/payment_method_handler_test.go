package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

func sendInput(amount string) usecase.SendInput {
	return usecase.SendInput{UserID: domain.DemoUserID, RecipientEmail: "friend@example.com", Amount: amount}
}

func newPaymentMethodRouter(t *testing.T) (http.Handler, *walletFixture) {
	t.Helper()

	f := newWalletFixture(t)
	handler := NewPaymentMethodHandler(f.wallet, domain.DemoUserID)

	r := chi.NewRouter()
	r.Post("/api/payment-methods", handler.Create)
	r.Delete("/api/payment-methods/{id}", handler.Deactivate)

	return r, f
}

func TestPaymentMethodHandler_Create(t *testing.T) {
	router, _ := newPaymentMethodRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postJSON("/api/payment-methods", `{"type":"card","provider":"amex","lastFour":"1005","expiryDate":"01/29"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PaymentMethodResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 4 || resp.Type != "card" || !resp.IsActive {
		t.Fatalf("unexpected payment method %+v", resp)
	}
}

func TestPaymentMethodHandler_CreateInvalid(t *testing.T) {
	router, _ := newPaymentMethodRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postJSON("/api/payment-methods", `{"type":"bank","provider":"bank","lastFour":"12"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Details) != 2 || resp.Details[0].Field != "lastFour" || resp.Details[1].Field != "bankName" {
		t.Fatalf("unexpected details %+v", resp.Details)
	}
}

func TestPaymentMethodHandler_Deactivate(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "existing", path: "/api/payment-methods/2", wantStatus: http.StatusOK},
		{name: "missing", path: "/api/payment-methods/99", wantStatus: http.StatusNotFound},
		{name: "not a number", path: "/api/payment-methods/abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newPaymentMethodRouter(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
