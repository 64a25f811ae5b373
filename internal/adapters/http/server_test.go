package adapter_http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	adapter_http "github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/http"
	"github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/persistence/memory"
	"github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/platform"
	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	impl_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/account"
	impl_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/transfer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv    *httptest.Server
	outbox *memory.OutboxRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bank := domain_bank.NewBank("National Bank")
	uow := memory.NewUnitOfWork()
	outbox := memory.NewOutboxRepository()

	repo := memory.NewTransferRepository()

	accounts := impl_account.NewAccountUsecaseImpl(bank, uow, nil)
	transfers := impl_transfer.NewTransferFundsUsecaseImpl(
		bank, uow, repo, outbox,
		platform.SystemClock{}, platform.UUIDGenerator{}, nil,
	)
	receipts := impl_transfer.NewGetTransferUsecaseImpl(repo, nil)

	srv := httptest.NewServer(adapter_http.NewServer(accounts, transfers, receipts, nil).Router())
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, outbox: outbox}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func (f *fixture) raw(t *testing.T, method, path, body string) int {
	t.Helper()

	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}

type account struct {
	Owner    string `json:"owner"`
	Balance  string `json:"balance"`
	BankName string `json:"bank_name"`
}

type transfer struct {
	TransferID    string `json:"transfer_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	FromBalance   string `json:"from_balance"`
	ToBalance     string `json:"to_balance"`
	FailureReason string `json:"failure_reason"`
	CorrelationID string `json:"correlation_id"`
	Error         string `json:"error"`
}

type apiError struct {
	Error string `json:"error"`
}

func (f *fixture) open(t *testing.T, owner, balance string) {
	t.Helper()

	code := f.do(t, http.MethodPost, "/accounts", map[string]string{"owner": owner, "balance": balance}, nil, nil)
	require.Equal(t, http.StatusCreated, code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", nil, nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAccounts(t *testing.T) {
	f := newFixture(t)

	var created account
	code := f.do(t, http.MethodPost, "/accounts", map[string]string{"owner": "Pedro", "balance": "1000.12345"}, nil, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Pedro", created.Owner)
	assert.Equal(t, "1000.12345", created.Balance)
	assert.Equal(t, "National Bank", created.BankName)

	t.Run("debit", func(t *testing.T) {
		var got account
		code := f.do(t, http.MethodPost, "/accounts/Pedro/debit", map[string]string{"amount": "100"}, nil, &got)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "900.12345", got.Balance)
	})

	t.Run("credit", func(t *testing.T) {
		var got account
		code := f.do(t, http.MethodPost, "/accounts/Pedro/credit", map[string]string{"amount": "200"}, nil, &got)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "1100.12345", got.Balance)
	})

	t.Run("overdraft is rejected", func(t *testing.T) {
		var got apiError
		code := f.do(t, http.MethodPost, "/accounts/Pedro/debit", map[string]string{"amount": "1500"}, nil, &got)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "Insufficient funds", got.Error)

		var after account
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/accounts/Pedro", nil, nil, &after))
		assert.Equal(t, "1100.12345", after.Balance)
	})

	t.Run("duplicate owner", func(t *testing.T) {
		code := f.do(t, http.MethodPost, "/accounts", map[string]string{"owner": "Pedro", "balance": "1"}, nil, nil)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("unknown owner", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/accounts/Nobody", nil, nil, nil))
	})

	t.Run("bad amount", func(t *testing.T) {
		code := f.do(t, http.MethodPost, "/accounts/Pedro/credit", map[string]string{"amount": "ten"}, nil, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("malformed body", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.raw(t, http.MethodPost, "/accounts", "{"))
	})

	t.Run("unknown field", func(t *testing.T) {
		code := f.raw(t, http.MethodPost, "/accounts/Pedro/credit", `{"amount":"1","ammount":"2"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("trailing data", func(t *testing.T) {
		code := f.raw(t, http.MethodPost, "/accounts/Pedro/credit", `{"amount":"1"}{"amount":"1"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("oversized body", func(t *testing.T) {
		body := `{"owner":"` + strings.Repeat("x", 1<<20) + `","balance":"1"}`
		assert.Equal(t, http.StatusRequestEntityTooLarge, f.raw(t, http.MethodPost, "/accounts", body))
	})

	t.Run("list and bank", func(t *testing.T) {
		f.open(t, "Diego", "5")

		var list []account
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/accounts", nil, nil, &list))
		require.Len(t, list, 2)
		assert.Equal(t, "Pedro", list[0].Owner)
		assert.Equal(t, "Diego", list[1].Owner)

		var b struct {
			Name     string `json:"name"`
			Accounts int    `json:"accounts"`
		}
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/bank", nil, nil, &b))
		assert.Equal(t, "National Bank", b.Name)
		assert.Equal(t, 2, b.Accounts)
	})
}

func TestAccounts_OwnerPathEncoding(t *testing.T) {
	owners := []string{"50%41off", "a/b", "Juan Pedro", "100% sure"}

	for _, owner := range owners {
		t.Run(owner, func(t *testing.T) {
			f := newFixture(t)
			f.open(t, owner, "10")

			path := "/accounts/" + url.PathEscape(owner)

			var got account
			require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, path, nil, nil, &got))
			assert.Equal(t, owner, got.Owner)

			require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, path+"/debit", map[string]string{"amount": "4"}, nil, &got))
			assert.Equal(t, "6", got.Balance)

			require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, path+"/credit", map[string]string{"amount": "1"}, nil, &got))
			assert.Equal(t, "7", got.Balance)
		})
	}
}

func TestTransfers(t *testing.T) {
	f := newFixture(t)
	f.open(t, "Juan Pedro", "2500")
	f.open(t, "Diego", "1500.8989")

	headers := func(key string) map[string]string {
		return map[string]string{
			"Idempotency-Key":  key,
			"X-Correlation-ID": "corr-" + key,
			"traceparent":      "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		}
	}

	var done transfer
	code := f.do(t, http.MethodPost, "/transfers",
		map[string]string{"from": "Diego", "to": "Juan Pedro", "amount": "500"}, headers("k1"), &done)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "COMPLETED", done.Status)
	assert.Equal(t, "1000.8989", done.FromBalance)
	assert.Equal(t, "3000", done.ToBalance)
	assert.Equal(t, "corr-k1", done.CorrelationID)
	assert.NotEmpty(t, done.TransferID)
	assert.Equal(t, 2, f.outbox.Len())

	var juan account
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/accounts/"+url.PathEscape("Juan Pedro"), nil, nil, &juan))
	assert.Equal(t, "3000", juan.Balance)

	t.Run("replay returns the same receipt", func(t *testing.T) {
		var again transfer
		code := f.do(t, http.MethodPost, "/transfers",
			map[string]string{"from": "Diego", "to": "Juan Pedro", "amount": "500.00"}, headers("k1"), &again)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, done.TransferID, again.TransferID)
		assert.Equal(t, 2, f.outbox.Len())
	})

	t.Run("receipt lookup", func(t *testing.T) {
		var got transfer
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/transfers/"+done.TransferID, nil, nil, &got))
		assert.Equal(t, done.TransferID, got.TransferID)
		assert.Equal(t, "Diego", got.From)
		assert.Equal(t, "Juan Pedro", got.To)
		assert.Equal(t, "500", got.Amount)
		assert.Equal(t, "COMPLETED", got.Status)

		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/transfers/00000000-0000-0000-0000-000000000000", nil, nil, nil))
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/transfers/nope", nil, nil, nil))
	})

	t.Run("same key different payload", func(t *testing.T) {
		code := f.do(t, http.MethodPost, "/transfers",
			map[string]string{"from": "Diego", "to": "Juan Pedro", "amount": "1"}, headers("k1"), nil)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("insufficient funds records a failed receipt", func(t *testing.T) {
		var failed transfer
		code := f.do(t, http.MethodPost, "/transfers",
			map[string]string{"from": "Diego", "to": "Juan Pedro", "amount": "5000"}, headers("k2"), &failed)
		require.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "FAILED", failed.Status)
		assert.Equal(t, "Insufficient funds", failed.Error)
		assert.Equal(t, "Insufficient funds", failed.FailureReason)
		assert.NotEmpty(t, failed.TransferID)
		assert.Equal(t, 4, f.outbox.Len())

		var diego account
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/accounts/Diego", nil, nil, &diego))
		assert.Equal(t, "1000.8989", diego.Balance)
	})

	t.Run("unknown account", func(t *testing.T) {
		code := f.do(t, http.MethodPost, "/transfers",
			map[string]string{"from": "Diego", "to": "Nobody", "amount": "1"}, headers("k3"), nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("missing idempotency key", func(t *testing.T) {
		code := f.do(t, http.MethodPost, "/transfers",
			map[string]string{"from": "Diego", "to": "Juan Pedro", "amount": "1"}, nil, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}
