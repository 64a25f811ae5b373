package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

const (
	addrFlag          = "addr"
	bankNameFlag      = "bank-name"
	relayIntervalFlag = "relay-interval"
	relayBatchFlag    = "relay-batch"
	verboseFlag       = "verbose"
	seedFlag          = "seed"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type Seed struct {
	Owner   string
	Balance string
}

type Config struct {
	Addr          string
	BankName      string
	RelayInterval time.Duration
	RelayBatch    int
	Verbose       bool
	Seeds         []Seed
}

func (c Config) Validate() []error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, fmt.Errorf("--%s must not be empty", addrFlag))
	}

	if strings.TrimSpace(c.BankName) == "" {
		errs = append(errs, fmt.Errorf("--%s must not be empty", bankNameFlag))
	}

	if c.RelayInterval <= 0 {
		errs = append(errs, fmt.Errorf("--%s must be positive, got %s", relayIntervalFlag, c.RelayInterval))
	}

	if c.RelayBatch <= 0 {
		errs = append(errs, fmt.Errorf("--%s must be positive, got %d", relayBatchFlag, c.RelayBatch))
	}

	seen := make(map[string]bool, len(c.Seeds))
	for _, s := range c.Seeds {
		if _, err := decimal.NewFromString(s.Balance); err != nil {
			errs = append(errs, fmt.Errorf("--%s %s: invalid balance %q", seedFlag, s.Owner, s.Balance))
		}
		if seen[s.Owner] {
			errs = append(errs, fmt.Errorf("--%s %s: owner seeded twice", seedFlag, s.Owner))
		}
		seen[s.Owner] = true
	}

	return errs
}

// parseSeeds reads owner=balance pairs. The owner may contain spaces but not '='.
func parseSeeds(raw []string) ([]Seed, error) {
	seeds := make([]Seed, 0, len(raw))
	for _, r := range raw {
		owner, balance, ok := strings.Cut(r, "=")
		owner = strings.TrimSpace(owner)
		if !ok || owner == "" {
			return nil, fmt.Errorf("--%s %q: expected owner=balance", seedFlag, r)
		}

		seeds = append(seeds, Seed{Owner: owner, Balance: strings.TrimSpace(balance)})
	}

	return seeds, nil
}

func newCommand(run func(ctx context.Context, cfg Config) error) *cli.Command {
	return &cli.Command{
		Name:  "bankd",
		Usage: "In-memory bank accounts service",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			seeds, err := parseSeeds(cmd.StringSlice(seedFlag))
			if err != nil {
				return err
			}

			cfg := Config{
				Addr:          cmd.String(addrFlag),
				BankName:      cmd.String(bankNameFlag),
				RelayInterval: cmd.Duration(relayIntervalFlag),
				RelayBatch:    int(cmd.Int(relayBatchFlag)),
				Verbose:       cmd.Bool(verboseFlag),
				Seeds:         seeds,
			}

			if errs := cfg.Validate(); len(errs) > 0 {
				msgs := make([]string, 0, len(errs))
				for _, err := range errs {
					msgs = append(msgs, err.Error())
				}
				return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
			}

			return run(ctx, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Program version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Println(Version)
					return nil
				},
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    addrFlag,
				Usage:   "HTTP listen address",
				Value:   ":8080",
				Sources: cli.EnvVars("BANKD_ADDR"),
			},
			&cli.StringFlag{
				Name:    bankNameFlag,
				Usage:   "Name of the bank",
				Value:   "National Bank",
				Sources: cli.EnvVars("BANKD_BANK_NAME"),
			},
			&cli.DurationFlag{
				Name:    relayIntervalFlag,
				Usage:   "How often the outbox is flushed",
				Value:   time.Second,
				Sources: cli.EnvVars("BANKD_RELAY_INTERVAL"),
			},
			&cli.IntFlag{
				Name:    relayBatchFlag,
				Usage:   "Maximum outbox messages published per flush",
				Value:   100,
				Sources: cli.EnvVars("BANKD_RELAY_BATCH"),
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.StringSliceFlag{
				Name:  seedFlag,
				Usage: "Account opened at start-up as owner=balance, repeatable",
			},
		},
	}
}
