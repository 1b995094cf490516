package services

import (
	"context"
	"fmt"
	"time"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService provides financial report generation.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a specific date. The org-wide
// totals must agree to the cent; a mismatch means the books are corrupt and
// the report is refused rather than published.
func (s *reportingService) TrialBalance(ctx context.Context, orgID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, orgID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance data", "org_id", orgID)
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		s.LogError(ctx, apperrors.ErrInternalConsistency, "Trial balance does not balance",
			"org_id", orgID,
			"total_debit", totalDebit.String(),
			"total_credit", totalCredit.String())
		return nil, fmt.Errorf("%w: trial balance debits %s do not equal credits %s",
			apperrors.ErrInternalConsistency, totalDebit.String(), totalCredit.String())
	}

	return &domain.TrialBalanceReport{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, orgID string, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, cogs, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, orgID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch profit and loss data", "org_id", orgID)
		return nil, fmt.Errorf("failed to generate profit and loss report: %w", err)
	}

	netProfit := decimal.Zero
	for _, rev := range revenue {
		netProfit = netProfit.Add(rev.NetAmount)
	}
	for _, c := range cogs {
		netProfit = netProfit.Sub(c.NetAmount)
	}
	for _, exp := range expenses {
		netProfit = netProfit.Sub(exp.NetAmount)
	}

	return &domain.PAndLReport{
		Revenue:   revenue,
		COGS:      cogs,
		Expenses:  expenses,
		NetProfit: netProfit,
	}, nil
}

// BalanceSheet generates a balance sheet report as of a specific date.
func (s *reportingService) BalanceSheet(ctx context.Context, orgID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, orgID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch balance sheet data", "org_id", orgID)
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
	}
	for _, a := range assets {
		report.TotalAssets = report.TotalAssets.Add(a.NetAmount)
	}
	for _, l := range liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(l.NetAmount)
	}
	for _, e := range equity {
		report.TotalEquity = report.TotalEquity.Add(e.NetAmount)
	}

	return report, nil
}
