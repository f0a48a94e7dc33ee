package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MikeMC777/northwind-report/internal/config"
	"github.com/MikeMC777/northwind-report/internal/logging"
	"github.com/MikeMC777/northwind-report/internal/northwind"
	"github.com/MikeMC777/northwind-report/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "northwind-report",
	Short: "Print the Northwind query exercise report",
	Long: `Runs a fixed sequence of read-only queries against a Northwind database
and prints the results to stdout. Every question is answered twice: once
through the GORM query builder (METHOD SYNTAX) and once through hand-written
SQL (QUERY SYNTAX).

Configuration comes from .env, config/northwind.yaml and NORTHWIND_*
environment variables.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.OutOrStdout())
	},
}

// loggedError is an error run has already written to the log.
type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("config loaded",
		zap.String("driver", cfg.Driver),
		zap.String("postgres_dsn", cfg.RedactedDSN()),
		zap.String("sqlite_path", cfg.SQLitePath),
		zap.String("employee_country", cfg.EmployeeCountry))

	ds, err := northwind.Open(ctx, cfg, log)
	if err != nil {
		log.Error("open dataset", zap.Error(err))
		return loggedError{err}
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Warn("close dataset", zap.Error(err))
		}
	}()

	opts := report.DefaultOptions()
	opts.EmployeeCountry = cfg.EmployeeCountry

	if err := report.New(ds.Method, ds.Query, out, log, opts).Run(ctx); err != nil {
		log.Error("report aborted", zap.Error(err))
		return loggedError{err}
	}
	log.Info("report complete")
	return nil
}

// reportError prints err unless the logger already has. Config and argument
// errors happen before there is a logger.
func reportError(w io.Writer, err error) {
	if errors.As(err, new(loggedError)) {
		return
	}
	fmt.Fprintln(w, "northwind-report:", err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
