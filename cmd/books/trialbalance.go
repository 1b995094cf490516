package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/openbooks/books_backend/internal/core/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/repositories/database/pgsql"
	"github.com/openbooks/books_backend/pkg/database"
	"github.com/spf13/cobra"
)

var (
	trialBalanceOrgID string
	trialBalanceAsOf  string
)

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Print a trial balance as JSON",
	Long: `trial-balance sums debits and credits per account as of a date and
asserts that the org-wide totals agree before printing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID := trialBalanceOrgID
		if orgID == "" {
			orgID = cfg.DefaultOrgID
		}
		if orgID == "" {
			return fmt.Errorf("an org ID is required; pass --org or set DEFAULT_ORG_ID")
		}

		asOf := time.Now().UTC()
		if trialBalanceAsOf != "" {
			parsed, err := time.Parse("2006-01-02", trialBalanceAsOf)
			if err != nil {
				return fmt.Errorf("invalid --as-of date %q, expected YYYY-MM-DD: %w", trialBalanceAsOf, err)
			}
			asOf = parsed
		}

		ctx := context.Background()
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return fmt.Errorf("failed to initialize database pool: %w", err)
		}
		defer database.ClosePgxPool(pool)

		repos := pgsql.NewRepositoryProvider(pool)
		container := services.NewServiceContainer(*repos)

		report, err := container.Reporting.TrialBalance(ctx, orgID, asOf)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.ToTrialBalanceResponse(report, asOf))
	},
}

func init() {
	trialBalanceCmd.Flags().StringVar(&trialBalanceOrgID, "org", "", "Org to report on (defaults to DEFAULT_ORG_ID)")
	trialBalanceCmd.Flags().StringVar(&trialBalanceAsOf, "as-of", "", "Report date in YYYY-MM-DD (defaults to today)")
	rootCmd.AddCommand(trialBalanceCmd)
}
