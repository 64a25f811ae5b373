package adapter_http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	port_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/account"
	port_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/transfer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/kit/log/level"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest   = errors.New("malformed request body")
	errBodyTooLarge = errors.New("request body too large")
)

type accountResponse struct {
	Owner    string `json:"owner"`
	Balance  string `json:"balance"`
	BankName string `json:"bank_name,omitempty"`
}

type bankResponse struct {
	Name     string `json:"name"`
	Accounts int    `json:"accounts"`
}

type transferResponse struct {
	TransferID    string    `json:"transfer_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	FromBalance   string    `json:"from_balance,omitempty"`
	ToBalance     string    `json:"to_balance,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`
	Error         string    `json:"error,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) bank(w http.ResponseWriter, r *http.Request) {
	out, err := s.accounts.Bank(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bankResponse{Name: out.Name, Accounts: out.Accounts})
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	out, err := s.accounts.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := make([]accountResponse, 0, len(out))
	for _, a := range out {
		resp = append(resp, toAccountResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) openAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner   string `json:"owner"`
		Balance string `json:"balance"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := s.accounts.Open(r.Context(), port_account.OpenAccountInput{Owner: req.Owner, Balance: req.Balance})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(out))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	out, err := s.accounts.Get(r.Context(), ownerParam(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(out))
}

func (s *Server) debit(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, s.accounts.Debit)
}

func (s *Server) credit(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, s.accounts.Credit)
}

type moveFunc func(ctx context.Context, in port_account.MoveFundsInput) (port_account.AccountOutput, error)

func (s *Server) move(w http.ResponseWriter, r *http.Request, fn moveFunc) {
	var req struct {
		Amount string `json:"amount"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := fn(r.Context(), port_account.MoveFundsInput{Owner: ownerParam(r), Amount: req.Amount})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(out))
}

// transfer answers a rejected transfer with 409 and the FAILED receipt, so a
// client can still learn the transfer id it may replay with.
func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount string `json:"amount"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	correlationID := r.Header.Get("X-Correlation-ID")
	if correlationID == "" {
		correlationID = middleware.GetReqID(r.Context())
	}

	out, err := s.transfers.Execute(r.Context(), port_transfer.TransferFundsInput{
		FromOwner:      req.From,
		ToOwner:        req.To,
		Amount:         req.Amount,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		CorrelationID:  correlationID,
		Traceparent:    r.Header.Get("traceparent"),
	})
	if err != nil && !(errors.Is(err, domain_bank.ErrInsufficientFunds) && out.TransferID != "") {
		s.fail(w, r, err)
		return
	}

	resp := toTransferResponse(out)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusConflict, resp)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getTransfer(w http.ResponseWriter, r *http.Request) {
	out, err := s.receipts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransferResponse(out))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		level.Error(s.logger).Log("msg", "request failed", "path", r.URL.Path, "err", err)
	}

	writeErr(w, err)
}

// decode reads a single JSON object of at most maxBodyBytes and rejects
// fields the endpoint does not know.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", errBadRequest)
	}

	return nil
}

// ownerParam returns the decoded owner segment. chi matches on URL.RawPath
// when the request has one, and only then is the parameter still escaped.
func ownerParam(r *http.Request) string {
	owner := chi.URLParam(r, "owner")
	if r.URL.RawPath == "" {
		return owner
	}

	if decoded, err := url.PathUnescape(owner); err == nil {
		return decoded
	}

	return owner
}

func toAccountResponse(a port_account.AccountOutput) accountResponse {
	return accountResponse{Owner: a.Owner, Balance: a.Balance, BankName: a.BankName}
}

func toTransferResponse(out port_transfer.TransferFundsOutput) transferResponse {
	return transferResponse{
		TransferID:    out.TransferID,
		From:          out.FromOwner,
		To:            out.ToOwner,
		Amount:        out.Amount,
		Status:        out.Status,
		FromBalance:   out.FromBalance,
		ToBalance:     out.ToBalance,
		FailureReason: out.FailureReason,
		CorrelationID: out.CorrelationID,
		CreatedAt:     out.CreatedAt,
	}
}
