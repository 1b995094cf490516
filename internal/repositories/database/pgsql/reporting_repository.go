package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetTrialBalanceData retrieves per-account debit/credit totals as of a specific date.
// Reversing transactions are included so voided activity nets out of the totals.
// Inactive accounts are included too; their history still belongs to the books.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, orgID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name AS account_name,
			a.category,
			SUM(CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN e.entry_type = 'CREDIT' THEN e.amount ELSE 0 END) AS total_credit
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.date <= $1
			AND a.org_id = $2
		GROUP BY a.account_id, a.code, a.name, a.category
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, asOf, orgID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var category string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&category,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.Category = domain.AccountCategory(category)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}

// GetProfitAndLossData retrieves revenue, COGS and expense nets for a specific period
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, orgID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.category,
			a.account_id,
			a.name,
			SUM(CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE -e.amount END) AS net
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.date BETWEEN $1 AND $2
			AND a.org_id = $3
			AND a.category IN ('REVENUE', 'COGS', 'EXPENSE')
		GROUP BY a.category, a.account_id, a.name
		ORDER BY a.category, a.name
	`

	rows, err := r.Pool.Query(ctx, query, from, to, orgID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	var revenue []domain.AccountAmount
	var cogs []domain.AccountAmount
	var expenses []domain.AccountAmount

	for rows.Next() {
		var category, accountID, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&category, &accountID, &name, &netAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Name:      name,
		}

		switch domain.AccountCategory(category) {
		case domain.Revenue:
			// Credits increase revenue, so invert the debit-positive net.
			accountAmount.NetAmount = netAmount.Neg()
			revenue = append(revenue, accountAmount)
		case domain.COGS:
			accountAmount.NetAmount = netAmount
			cogs = append(cogs, accountAmount)
		case domain.Expense:
			accountAmount.NetAmount = netAmount
			expenses = append(expenses, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	return revenue, cogs, expenses, nil
}

// GetBalanceSheetData retrieves asset, liability and equity nets as of a specific date
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, orgID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.category,
			a.account_id,
			a.name,
			SUM(CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE -e.amount END) AS net
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.date <= $1
			AND a.org_id = $2
			AND a.category IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.category, a.account_id, a.name
		ORDER BY a.category, a.name
	`

	rows, err := r.Pool.Query(ctx, query, asOf, orgID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	var assets []domain.AccountAmount
	var liabilities []domain.AccountAmount
	var equity []domain.AccountAmount

	for rows.Next() {
		var category, accountID, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&category, &accountID, &name, &netAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Name:      name,
		}

		switch domain.AccountCategory(category) {
		case domain.Asset:
			// Debits increase assets.
			accountAmount.NetAmount = netAmount
			assets = append(assets, accountAmount)
		case domain.Liability:
			// Credits increase liabilities, so invert the debit-positive net.
			accountAmount.NetAmount = netAmount.Neg()
			liabilities = append(liabilities, accountAmount)
		case domain.Equity:
			accountAmount.NetAmount = netAmount.Neg()
			equity = append(equity, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	return assets, liabilities, equity, nil
}
