package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		want        string
		expectError bool
	}{
		{name: "integer", raw: "100", want: "100.00"},
		{name: "two decimals", raw: "25.75", want: "25.75"},
		{name: "one decimal", raw: "12.5", want: "12.50"},
		{name: "surrounding spaces", raw: "  7.10 ", want: "7.10"},
		{name: "trailing zeros beyond scale", raw: "1.100", want: "1.10"},
		{name: "minimum", raw: "0.01", want: "0.01"},
		{name: "maximum", raw: MaxAmount, want: "1000000000.00"},
		{name: "empty", raw: "", expectError: true},
		{name: "not a number", raw: "ten", expectError: true},
		{name: "zero", raw: "0", expectError: true},
		{name: "negative", raw: "-1", expectError: true},
		{name: "three decimals", raw: "0.005", expectError: true},
		{name: "above maximum", raw: "1000000000.01", expectError: true},
		{name: "huge exponent", raw: "1e100000000", expectError: true},
		{name: "tiny exponent", raw: "1e-100000000", expectError: true},
		{name: "small exponent", raw: "2.5E1", expectError: true},
		{name: "too long", raw: "0000000000000000000000000000000001", expectError: true},
		{name: "leading dot", raw: ".50", want: "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.raw, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatMoney(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, FormatMoney(got))
			}
		})
	}
}

func TestParseAmountExponentIsCheap(t *testing.T) {
	t.Parallel()

	start := time.Now()
	for _, raw := range []string{"1e2147483647", "1e-2147483647", "9E99999999"} {
		if _, err := ParseAmount(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("rejecting exponent input took %s", elapsed)
	}
}

func TestRoundMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "1.005", want: "1.01"},
		{in: "1.004", want: "1.00"},
		{in: "-1.005", want: "-1.01"},
		{in: "1284.5", want: "1284.50"},
	}

	for _, tt := range tests {
		got := FormatMoney(RoundMoney(decimal.RequireFromString(tt.in)))
		if got != tt.want {
			t.Errorf("RoundMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
