package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
)

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService

	orgID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
	suite.orgID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	asOf := time.Now()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: 1000, AccountName: "Cash", Category: domain.Asset, Debit: decimal.NewFromInt(750), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: 2000, AccountName: "Accounts Payable", Category: domain.Liability, Debit: decimal.Zero, Credit: decimal.NewFromInt(250)},
		{AccountID: uuid.NewString(), AccountCode: 4000, AccountName: "Sales", Category: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.orgID, asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.orgID, asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Len(report.Rows, 3)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(750)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(750)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_MismatchRefused() {
	ctx := context.Background()
	asOf := time.Now()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: 1000, AccountName: "Cash", Category: domain.Asset, Debit: decimal.NewFromInt(750), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: 4000, AccountName: "Sales", Category: domain.Revenue, Debit: decimal.Zero, Credit: decimal.RequireFromString("749.99")},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.orgID, asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.orgID, asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternalConsistency)
	suite.Nil(report)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyBooks() {
	ctx := context.Background()
	asOf := time.Now()
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.orgID, asOf).Return([]domain.TrialBalanceRow{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.orgID, asOf)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepoErrorPropagates() {
	ctx := context.Background()
	asOf := time.Now()
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.orgID, asOf).Return(nil, assert.AnError).Once()

	_, err := suite.service.TrialBalance(ctx, suite.orgID, asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetProfit() {
	ctx := context.Background()
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()
	revenue := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Sales", NetAmount: decimal.NewFromInt(1000)},
		{AccountID: uuid.NewString(), Name: "Service income", NetAmount: decimal.NewFromInt(200)},
	}
	cogs := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Cost of goods sold", NetAmount: decimal.NewFromInt(400)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Rent", NetAmount: decimal.NewFromInt(300)},
	}
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, suite.orgID, from, to).Return(revenue, cogs, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, from, to)

	suite.Require().NoError(err)
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(500)), "net profit should be revenue minus COGS minus expenses, got %s", report.NetProfit)
	suite.Len(report.Revenue, 2)
	suite.Len(report.COGS, 1)
	suite.Len(report.Expenses, 1)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_LossIsNegative() {
	ctx := context.Background()
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()
	revenue := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Sales", NetAmount: decimal.NewFromInt(100)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Rent", NetAmount: decimal.NewFromInt(300)},
	}
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, suite.orgID, from, to).Return(revenue, []domain.AccountAmount{}, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, from, to)

	suite.Require().NoError(err)
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(-200)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Totals() {
	ctx := context.Background()
	asOf := time.Now()
	assets := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Cash", NetAmount: decimal.NewFromInt(900)},
		{AccountID: uuid.NewString(), Name: "Accounts Receivable", NetAmount: decimal.NewFromInt(100)},
	}
	liabilities := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Accounts Payable", NetAmount: decimal.NewFromInt(400)},
	}
	equity := []domain.AccountAmount{
		{AccountID: uuid.NewString(), Name: "Retained Earnings", NetAmount: decimal.NewFromInt(600)},
	}
	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, suite.orgID, asOf).Return(assets, liabilities, equity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.orgID, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(600)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RepoErrorPropagates() {
	ctx := context.Background()
	asOf := time.Now()
	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, suite.orgID, asOf).Return(nil, nil, nil, assert.AnError).Once()

	_, err := suite.service.BalanceSheet(ctx, suite.orgID, asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
