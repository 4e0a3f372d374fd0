package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/iho/gowallet/internal/adapter/http"
	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/repository/memory"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	data := domain.Demo(time.Now().UTC())
	store := memory.NewAccountStore()
	ledger := memory.NewLedger()
	require.NoError(t, store.Seed(context.Background(), data))
	require.NoError(t, ledger.Seed(context.Background(), data))

	money := usecase.NewMoneyUseCase(store, ledger, memory.NewUserLocker(), nil, nil)
	wallet := usecase.NewWalletUseCase(store, ledger, nil)

	srv := httptest.NewServer(httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:        handler.NewWalletHandler(wallet, domain.DemoUserID),
		MoneyHandler:         handler.NewMoneyHandler(money, domain.DemoUserID),
		PaymentMethodHandler: handler.NewPaymentMethodHandler(wallet, domain.DemoUserID),
		HealthHandler:        handler.NewHealthHandler(),
		Logger:               zerolog.Nop(),
	}))
	t.Cleanup(srv.Close)

	return srv
}

func runCLI(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--url", url}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBalance(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "John Smith (john.smith@email.com)")
	assert.Contains(t, out, "Balance: $1284.50")
}

func TestBalance_JSON(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "--json", "balance")
	require.NoError(t, err)

	var user dto.UserResponse
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "1284.50", user.Balance)
	assert.Equal(t, "johnsmith", user.Username)
}

func TestTransactions(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "transactions")
	require.NoError(t, err)
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "Payment Received")
	assert.Contains(t, out, "+$125.00")
	assert.Contains(t, out, "-$89.99")
	assert.Less(t, bytes.Index([]byte(out), []byte("Payment Received")), bytes.Index([]byte(out), []byte("Added Money")))
}

func TestPaymentMethods(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "pm")
	require.NoError(t, err)
	assert.Contains(t, out, "PRIMARY")
	assert.Contains(t, out, "****4242")
	assert.Contains(t, out, "Bank of America")
}

func TestSend(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "send", "friend@example.com", "25.50", "--note", "Lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully sent $25.50 to friend@example.com")
	assert.Contains(t, out, "Transaction #5: Lunch")

	out, err = runCLI(t, srv.URL, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: $1259.00")
}

func TestSend_ValidationError(t *testing.T) {
	srv := newTestAPI(t)

	_, err := runCLI(t, srv.URL, "send", "not-an-email", "0")
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Validation failed", apiErr.Body.Error)
	assert.NotEmpty(t, apiErr.Body.Details)
}

func TestSend_InsufficientBalance(t *testing.T) {
	srv := newTestAPI(t)

	_, err := runCLI(t, srv.URL, "send", "friend@example.com", "5000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient balance (HTTP 400)")
}

func TestAdd(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "add", "100", "--payment-method", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully added $100.00 to your account")

	out, err = runCLI(t, srv.URL, "--json", "transactions")
	require.NoError(t, err)

	var txs []dto.TransactionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &txs))
	require.Len(t, txs, 5)
	assert.Equal(t, "add_money", txs[0].Type)
	require.NotNil(t, txs[0].PaymentMethodID.Value)
	assert.Equal(t, int64(1), *txs[0].PaymentMethodID.Value)
}

func TestRequest(t *testing.T) {
	srv := newTestAPI(t)

	out, err := runCLI(t, srv.URL, "request", "friend@example.com", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Money request sent to friend@example.com for $10.00")
}

func TestArgsValidated(t *testing.T) {
	srv := newTestAPI(t)

	_, err := runCLI(t, srv.URL, "send", "friend@example.com")
	assert.Error(t, err)
}

func TestServerUnavailable(t *testing.T) {
	srv := newTestAPI(t)
	url := srv.URL
	srv.Close()

	_, err := runCLI(t, url, "--timeout", "1s", "balance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := runCLI(t, srv.URL, "balance")
	require.Error(t, err)
	assert.Equal(t, "bad gateway (HTTP 502)", err.Error())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, "-$1.00", signedAmount("send", "1.00"))
	assert.Equal(t, "-$1.00", signedAmount("purchase", "1.00"))
	assert.Equal(t, "+$1.00", signedAmount("receive", "1.00"))
	assert.Equal(t, "+$1.00", signedAmount("add_money", "1.00"))
}
