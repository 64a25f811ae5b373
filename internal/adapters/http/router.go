// Package adapter_http exposes the account and transfer use cases over a JSON
// HTTP API.
package adapter_http

import (
	"net/http"
	"time"

	port_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/account"
	port_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/transfer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type Server struct {
	accounts  port_account.AccountUseCase
	transfers port_transfer.TransferFundsUseCase
	receipts  port_transfer.GetTransferUseCase
	logger    log.Logger
}

func NewServer(
	accounts port_account.AccountUseCase,
	transfers port_transfer.TransferFundsUseCase,
	receipts port_transfer.GetTransferUseCase,
	logger log.Logger,
) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Server{
		accounts:  accounts,
		transfers: transfers,
		receipts:  receipts,
		logger:    log.With(logger, "component", "http"),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/bank", s.bank)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", s.listAccounts)
		r.Post("/", s.openAccount)

		r.Route("/{owner}", func(r chi.Router) {
			r.Get("/", s.getAccount)
			r.Post("/debit", s.debit)
			r.Post("/credit", s.credit)
		})
	})

	r.Post("/transfers", s.transfer)
	r.Get("/transfers/{id}", s.getTransfer)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		level.Debug(s.logger).Log(
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"took", time.Since(start),
		)
	})
}
