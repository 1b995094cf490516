package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
	"github.com/openbooks/books_backend/internal/dto"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.LedgerSvcFacade
	assetAccount     domain.Account
	liabilityAccount domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
	orgID            string
	userID           string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.assetAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        suite.orgID,
		Code:         1000,
		Category:     domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        suite.orgID,
		Code:         2000,
		Category:     domain.Liability,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        suite.orgID,
		Code:         4000,
		Category:     domain.Revenue,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        suite.orgID,
		Code:         6000,
		Category:     domain.Expense,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *LedgerServiceTestSuite) accountsMapFor(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		m[acc.AccountID] = acc
	}
	return m
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now(),
		Description: "Owner capital contribution",
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
	}

	accountsMap := suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.assetAccount.AccountID, suite.liabilityAccount.AccountID}).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.orgID, txn.OrgID)
	suite.Equal(domain.Posted, txn.Status)
	suite.Equal("USD", txn.CurrencyCode)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.Len(txn.Entries, 2)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_Unbalanced() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(50), EntryType: domain.Credit},
		},
	}

	accountsMap := suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvariantViolation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_SingleEntryFailsValidation() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
		},
	}

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_SingleAccountRejected() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
	}

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionMinAccounts)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_PartialSourceLinkRejected() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
		SourceDocumentID: uuid.NewString(), // No type set alongside
	}

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPartialSourceLink)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	inactive := suite.liabilityAccount
	inactive.IsActive = false

	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: inactive.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
	}

	accountsMap := suite.accountsMapFor(suite.assetAccount, inactive)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_CurrencyMismatchRejected() {
	ctx := context.Background()
	euroAccount := suite.liabilityAccount
	euroAccount.CurrencyCode = "EUR"

	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: euroAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
	}

	accountsMap := suite.accountsMapFor(suite.assetAccount, euroAccount)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCurrencyMismatch)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_UnknownAccountRejected() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: missingID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
	}

	// The repository omits IDs it cannot find.
	accountsMap := suite.accountsMapFor(suite.assetAccount)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_RepoErrorPropagates() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date: time.Now(),
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), EntryType: domain.Credit},
		},
	}

	accountsMap := suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount)
	repoErr := assert.AnError
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.PostTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetTransactionByID_WrongOrgObscured() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		OrgID:         uuid.NewString(), // Different org
		Status:        domain.Posted,
	}
	suite.mockLedgerRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.orgID, txn.TransactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByTransactionID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID: originalID,
		OrgID:         suite.orgID,
		Date:          time.Now().AddDate(0, 0, -1),
		Description:   "Posting to undo",
		CurrencyCode:  "USD",
		Status:        domain.Posted,
	}
	originalEntries := []domain.Entry{
		{EntryID: uuid.NewString(), TransactionID: originalID, AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(75), EntryType: domain.Debit, CurrencyCode: "USD"},
		{EntryID: uuid.NewString(), TransactionID: originalID, AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(75), EntryType: domain.Credit, CurrencyCode: "USD"},
	}
	accountsMap := suite.accountsMapFor(suite.assetAccount, suite.revenueAccount)

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, originalID).Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByTransactionID", ctx, originalID).Return(originalEntries, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()
	suite.mockLedgerRepo.On("UpdateTransactionStatusAndLinks", ctx, mock.Anything, originalID, domain.Reversed, mock.AnythingOfType("*string"), (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	reversing, err := suite.service.ReverseTransaction(ctx, suite.orgID, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Equal(originalID, reversing.OriginalTransactionID)
	suite.Equal(domain.Posted, reversing.Status)
	suite.Require().Len(reversing.Entries, 2)
	suite.Equal(domain.Credit, reversing.Entries[0].EntryType) // Flipped from debit
	suite.Equal(domain.Debit, reversing.Entries[1].EntryType)  // Flipped from credit
	suite.True(reversing.Entries[0].Amount.Equal(decimal.NewFromInt(75)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID:          originalID,
		OrgID:                  suite.orgID,
		Status:                 domain.Reversed,
		ReversingTransactionID: uuid.NewString(),
	}

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, originalID).Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByTransactionID", ctx, originalID).Return([]domain.Entry{}, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.orgID, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateGuard)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_OfReversalRejected() {
	ctx := context.Background()
	reversalID := uuid.NewString()
	reversal := &domain.Transaction{
		TransactionID:         reversalID,
		OrgID:                 suite.orgID,
		Status:                domain.Posted,
		OriginalTransactionID: uuid.NewString(),
	}

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, reversalID).Return(reversal, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByTransactionID", ctx, reversalID).Return([]domain.Entry{}, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.orgID, reversalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateGuard)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
