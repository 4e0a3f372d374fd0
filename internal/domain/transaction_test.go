package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionType_IsDebit(t *testing.T) {
	debits := map[TransactionType]bool{
		TransactionSend:     true,
		TransactionPurchase: true,
		TransactionReceive:  false,
		TransactionAddMoney: false,
	}

	for typ, want := range debits {
		if got := typ.IsDebit(); got != want {
			t.Errorf("%s.IsDebit() = %v, want %v", typ, got, want)
		}
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("42.50")

	send := &Transaction{Amount: amount, Details: SendDetails{}}
	if !send.SignedAmount().Equal(amount.Neg()) {
		t.Errorf("send should be negative, got %s", send.SignedAmount())
	}

	add := &Transaction{Amount: amount, Details: AddMoneyDetails{}}
	if !add.SignedAmount().Equal(amount) {
		t.Errorf("add_money should be positive, got %s", add.SignedAmount())
	}
}

func TestTransactionDraft_Validate(t *testing.T) {
	tests := []struct {
		name        string
		draft       TransactionDraft
		expectError bool
	}{
		{
			name:  "valid send",
			draft: TransactionDraft{Amount: decimal.RequireFromString("1.50"), Details: SendDetails{}},
		},
		{
			name:        "missing details",
			draft:       TransactionDraft{Amount: decimal.NewFromInt(1)},
			expectError: true,
		},
		{
			name:        "zero amount",
			draft:       TransactionDraft{Amount: decimal.Zero, Details: SendDetails{}},
			expectError: true,
		},
		{
			name:        "sub-cent amount",
			draft:       TransactionDraft{Amount: decimal.RequireFromString("0.001"), Details: SendDetails{}},
			expectError: true,
		},
		{
			name:        "unknown status",
			draft:       TransactionDraft{Amount: decimal.NewFromInt(1), Status: "lost", Details: SendDetails{}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()

			if tt.expectError && !errors.Is(err, ErrInvalidDraft) {
				t.Errorf("expected ErrInvalidDraft, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransactionDraft_Materialize(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	draft := TransactionDraft{UserID: 1, Amount: decimal.NewFromInt(5), Details: PurchaseDetails{MerchantName: "Amazon"}}

	tx := draft.Materialize(9, at)

	if tx.ID != 9 || tx.UserID != 1 || !tx.CreatedAt.Equal(at) {
		t.Errorf("unexpected identity fields: %+v", tx)
	}
	if tx.Status != StatusCompleted {
		t.Errorf("expected default status completed, got %s", tx.Status)
	}
	if tx.Type() != TransactionPurchase {
		t.Errorf("expected purchase, got %s", tx.Type())
	}
	if FormatMoney(tx.Amount) != "5.00" {
		t.Errorf("expected 5.00, got %s", FormatMoney(tx.Amount))
	}
}

func TestFlattenUnflatten(t *testing.T) {
	pmID := int64(3)

	tests := []Details{
		SendDetails{RecipientEmail: "a@b.com", RecipientName: "Alice"},
		ReceiveDetails{SenderName: "Sarah Johnson", SenderEmail: "sarah@example.com"},
		PurchaseDetails{MerchantName: "Amazon", OrderID: "AMZ-789456"},
		AddMoneyDetails{PaymentMethodID: &pmID, Source: "Bank of America ****1234"},
		AddMoneyDetails{},
	}

	for _, details := range tests {
		flat := Flatten(details)

		got, err := Unflatten(details.Type(), flat)
		if err != nil {
			t.Fatalf("unflatten %s: %v", details.Type(), err)
		}
		if !reflect.DeepEqual(got, details) {
			t.Errorf("round trip of %s: got %+v, want %+v", details.Type(), got, details)
		}
	}
}

func TestFlatten_ReceiveUsesRecipientColumns(t *testing.T) {
	flat := Flatten(ReceiveDetails{SenderName: "Sarah Johnson"})

	if flat.RecipientName == nil || *flat.RecipientName != "Sarah Johnson" {
		t.Errorf("expected sender in recipient name column, got %v", flat.RecipientName)
	}
	if flat.RecipientEmail != nil {
		t.Errorf("expected empty email to stay nil, got %q", *flat.RecipientEmail)
	}
}

func TestUnflatten_UnknownType(t *testing.T) {
	_, err := Unflatten("refund", FlatDetails{})
	if !errors.Is(err, ErrUnknownTransactionType) {
		t.Fatalf("expected ErrUnknownTransactionType, got %v", err)
	}
}
