package repositories

import (
	"context"
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData retrieves per-account debit/credit totals as of a specific date
	GetTrialBalanceData(ctx context.Context, orgID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves revenue, COGS and expense nets for a period
	GetProfitAndLossData(ctx context.Context, orgID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error)

	// GetBalanceSheetData retrieves asset, liability and equity nets as of a specific date
	GetBalanceSheetData(ctx context.Context, orgID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error)
}
