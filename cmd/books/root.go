package main

import (
	"log/slog"

	"github.com/openbooks/books_backend/internal/platform/config"
	"github.com/openbooks/books_backend/internal/platform/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "books",
	Short: "Double-entry bookkeeping engine",
	Long: `books runs the double-entry ledger and payment application engine:
chart of accounts, invoices and bills, prepayments, credits and reports,
backed by PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		logger = logging.NewLogger(cfg.IsProduction)
		slog.SetDefault(logger)
		return nil
	},
}
