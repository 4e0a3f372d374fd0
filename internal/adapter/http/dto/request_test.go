package dto

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Amount
		wantErr bool
	}{
		{name: "string", body: `{"amount":"12.50"}`, want: "12.50"},
		{name: "number", body: `{"amount":12.5}`, want: "12.5"},
		{name: "integer", body: `{"amount":100}`, want: "100"},
		{name: "null", body: `{"amount":null}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
		{name: "not a number", body: `{"amount":"abc"}`, want: "abc"},
		{name: "bool", body: `{"amount":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SendMoneyRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Amount != tt.want {
				t.Errorf("expected %q, got %q", tt.want, req.Amount)
			}
		})
	}
}

func TestOptionalIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *int64
		wantErr bool
	}{
		{name: "number", body: `{"paymentMethodId":3}`, want: ptr(3)},
		{name: "numeric string", body: `{"paymentMethodId":"2"}`, want: ptr(2)},
		{name: "padded string", body: `{"paymentMethodId":" 1 "}`, want: ptr(1)},
		{name: "empty string", body: `{"paymentMethodId":""}`},
		{name: "null", body: `{"paymentMethodId":null}`},
		{name: "missing", body: `{}`},
		{name: "word", body: `{"paymentMethodId":"visa"}`, wantErr: true},
		{name: "fraction", body: `{"paymentMethodId":1.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddMoneyRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := req.PaymentMethodID.Value
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected nil, got %d", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("expected %d, got %v", *tt.want, got)
			}

			input := req.ToUseCaseInput(1)
			if input.UserID != 1 || input.PaymentMethodID != got {
				t.Errorf("unexpected use case input %+v", input)
			}
		})
	}
}

func TestCreatePaymentMethodRequestToUseCaseInput(t *testing.T) {
	var req CreatePaymentMethodRequest
	body := `{"type":"bank","provider":"bank","lastFour":"9876","bankName":"Chase","isPrimary":true}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := req.ToUseCaseInput(5)
	if input.UserID != 5 || input.Kind != "bank" || input.LastFour != "9876" || !input.IsPrimary {
		t.Fatalf("unexpected input %+v", input)
	}
	if input.BankName == nil || *input.BankName != "Chase" || input.ExpiryDate != nil {
		t.Fatalf("unexpected optional fields %+v", input)
	}
}

func ptr(v int64) *int64 { return &v }
