package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapter_http "github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/http"
	"github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/messaging/logpub"
	"github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/persistence/memory"
	"github.com/PedroCamargo-dev/core-bank-accounts/internal/adapters/platform"
	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	impl_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/account"
	impl_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/transfer"
	impl_relay "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/worker/relay"
	port_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/account"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(serve).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bankd: %s\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}

	return level.NewFilter(logger, level.AllowInfo())
}

func serve(ctx context.Context, cfg Config) error {
	logger := newLogger(cfg.Verbose)

	bank := domain_bank.NewBank(cfg.BankName)
	uow := memory.NewUnitOfWork()
	outbox := memory.NewOutboxRepository()
	receiptStore := memory.NewTransferRepository()

	accounts := impl_account.NewAccountUsecaseImpl(bank, uow, logger)
	transfers := impl_transfer.NewTransferFundsUsecaseImpl(
		bank, uow, receiptStore, outbox,
		platform.SystemClock{}, platform.UUIDGenerator{}, logger,
	)
	receipts := impl_transfer.NewGetTransferUsecaseImpl(receiptStore, logger)

	for _, s := range cfg.Seeds {
		if _, err := accounts.Open(ctx, port_account.OpenAccountInput{Owner: s.Owner, Balance: s.Balance}); err != nil {
			return fmt.Errorf("seed %s: %w", s.Owner, err)
		}
	}

	relay := impl_relay.NewRelay(outbox, logpub.New(logger), cfg.RelayInterval, cfg.RelayBatch, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapter_http.NewServer(accounts, transfers, receipts, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		level.Info(logger).Log("msg", "listening", "addr", cfg.Addr, "bank", cfg.BankName, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return relay.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// Publish whatever the last requests enqueued before exiting.
	if _, err := relay.Flush(context.Background()); err != nil {
		level.Warn(logger).Log("msg", "final outbox flush failed", "err", err)
	}

	level.Info(logger).Log("msg", "stopped")

	return nil
}
