package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
	"github.com/openbooks/books_backend/internal/dto"
)

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo   *MockDocumentRepository
	mockPrepaymentRepo *MockPrepaymentRepository
	mockCreditRepo     *MockCreditRepository
	mockLedgerRepo     *MockLedgerRepository
	mockAccountRepo    *MockAccountRepository
	service            portssvc.PaymentSvc

	orgID  string
	userID string

	cashAccount        domain.Account
	arAccount          domain.Account
	apAccount          domain.Account
	custPrepayAccount  domain.Account
	custCreditsAccount domain.Account
	config             *domain.AccountConfiguration
	allAccounts        map[string]domain.Account
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockPrepaymentRepo = new(MockPrepaymentRepository)
	suite.mockCreditRepo = new(MockCreditRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPaymentService(
		suite.mockDocumentRepo,
		suite.mockPrepaymentRepo,
		suite.mockCreditRepo,
		suite.mockLedgerRepo,
		suite.mockAccountRepo,
	)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(), OrgID: suite.orgID, Code: 1000,
		Category: domain.Asset, CurrencyCode: "USD", IsActive: true, IsSystem: true,
	}
	suite.arAccount = domain.Account{
		AccountID: uuid.NewString(), OrgID: suite.orgID, Code: 1100,
		Category: domain.Asset, CurrencyCode: "USD", IsActive: true, IsSystem: true,
	}
	suite.apAccount = domain.Account{
		AccountID: uuid.NewString(), OrgID: suite.orgID, Code: 2100,
		Category: domain.Liability, CurrencyCode: "USD", IsActive: true, IsSystem: true,
	}
	suite.custPrepayAccount = domain.Account{
		AccountID: uuid.NewString(), OrgID: suite.orgID, Code: 2200,
		Category: domain.Liability, CurrencyCode: "USD", IsActive: true, IsSystem: true,
	}
	suite.custCreditsAccount = domain.Account{
		AccountID: uuid.NewString(), OrgID: suite.orgID, Code: 2300,
		Category: domain.Liability, CurrencyCode: "USD", IsActive: true, IsSystem: true,
	}

	suite.config = &domain.AccountConfiguration{
		OrgID: suite.orgID,
		Accounts: map[domain.SystemRole]string{
			domain.RoleCash:                 suite.cashAccount.AccountID,
			domain.RoleAccountsReceivable:   suite.arAccount.AccountID,
			domain.RoleAccountsPayable:      suite.apAccount.AccountID,
			domain.RoleCustomerPrepayments:  suite.custPrepayAccount.AccountID,
			domain.RoleUnusedCustomerCredit: suite.custCreditsAccount.AccountID,
		},
	}

	suite.allAccounts = map[string]domain.Account{
		suite.cashAccount.AccountID:        suite.cashAccount,
		suite.arAccount.AccountID:          suite.arAccount,
		suite.apAccount.AccountID:          suite.apAccount,
		suite.custPrepayAccount.AccountID:  suite.custPrepayAccount,
		suite.custCreditsAccount.AccountID: suite.custCreditsAccount,
	}
}

func (suite *PaymentServiceTestSuite) newInvoice(due int64) *domain.Document {
	total := decimal.NewFromInt(due)
	return &domain.Document{
		DocumentID:   uuid.NewString(),
		OrgID:        suite.orgID,
		DocumentType: domain.DocInvoice,
		PartyID:      uuid.NewString(),
		DocNumber:    "INV-1001",
		Date:         time.Now().AddDate(0, 0, -10),
		DueDate:      time.Now().AddDate(0, 0, 20),
		CurrencyCode: "USD",
		Total:        total,
		DueBalance:   total,
		Status:       domain.DocStatusPending,
	}
}

func (suite *PaymentServiceTestSuite) newBill(due int64) *domain.Document {
	doc := suite.newInvoice(due)
	doc.DocumentType = domain.DocBill
	doc.DocNumber = "BILL-2001"
	return doc
}

// expectLockedDocument wires the transaction plumbing around one settlement.
func (suite *PaymentServiceTestSuite) expectLockedDocument(ctx context.Context, doc *domain.Document) {
	suite.mockDocumentRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDocumentRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockDocumentRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialCashLeavesPartial() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	req := dto.RecordPaymentRequest{
		DocumentID:       doc.DocumentID,
		CashAmount:       decimal.NewFromInt(40),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
		Method:           domain.MethodBankTransfer,
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.allAccounts, nil).Once()
	// Invoice cash leg: debit the payment account, credit receivables.
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(entries []domain.Entry) bool {
		return len(entries) == 2 &&
			entries[0].AccountID == suite.cashAccount.AccountID && entries[0].EntryType == domain.Debit &&
			entries[1].AccountID == suite.arAccount.AccountID && entries[1].EntryType == domain.Credit
	}), mock.Anything).Return(nil).Once()
	suite.mockDocumentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.DocumentID == doc.DocumentID && p.Amount.Equal(decimal.NewFromInt(40)) && p.Method == domain.MethodBankTransfer
	})).Return(nil).Once()
	suite.mockDocumentRepo.On("UpdateDocumentSettlementInTx", ctx, mock.Anything, doc.DocumentID, mock.MatchedBy(func(due decimal.Decimal) bool {
		return due.Equal(decimal.NewFromInt(60))
	}), domain.DocStatusPartial, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.NotEmpty(result.PaymentID)
	suite.Equal(domain.DocStatusPartial, result.NewStatus)
	suite.True(result.NewDueBalance.Equal(decimal.NewFromInt(60)))
	suite.True(result.TotalApplied.Equal(decimal.NewFromInt(40)))
	suite.Len(result.TransactionIDs, 1)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_FullCashMarksPaid() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	req := dto.RecordPaymentRequest{
		DocumentID:       doc.DocumentID,
		CashAmount:       decimal.NewFromInt(100),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.allAccounts, nil).Once()
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	// An empty method defaults to OTHER.
	suite.mockDocumentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Method == domain.MethodOther
	})).Return(nil).Once()
	suite.mockDocumentRepo.On("UpdateDocumentSettlementInTx", ctx, mock.Anything, doc.DocumentID, mock.MatchedBy(func(due decimal.Decimal) bool {
		return due.IsZero()
	}), domain.DocStatusPaid, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DocStatusPaid, result.NewStatus)
	suite.True(result.NewDueBalance.IsZero())
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_BillCashLegIsMirrored() {
	ctx := context.Background()
	doc := suite.newBill(80)
	req := dto.RecordPaymentRequest{
		DocumentID:       doc.DocumentID,
		CashAmount:       decimal.NewFromInt(80),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.allAccounts, nil).Once()
	// Bill cash leg: debit payables, credit the payment account.
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(entries []domain.Entry) bool {
		return len(entries) == 2 &&
			entries[0].AccountID == suite.apAccount.AccountID && entries[0].EntryType == domain.Debit &&
			entries[1].AccountID == suite.cashAccount.AccountID && entries[1].EntryType == domain.Credit
	}), mock.Anything).Return(nil).Once()
	suite.mockDocumentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDocumentRepo.On("UpdateDocumentSettlementInTx", ctx, mock.Anything, doc.DocumentID, mock.Anything, domain.DocStatusPaid, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DocStatusPaid, result.NewStatus)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	req := dto.RecordPaymentRequest{
		DocumentID:       doc.DocumentID,
		CashAmount:       decimal.NewFromInt(150),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
	}

	suite.expectLockedDocument(ctx, doc)

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "UpdateDocumentSettlementInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ExactPrepaymentMarksPaid() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	prepayment := &domain.Prepayment{
		PrepaymentID:     uuid.NewString(),
		OrgID:            suite.orgID,
		Kind:             domain.KindCustomer,
		PartyID:          doc.PartyID,
		Amount:           decimal.NewFromInt(100),
		RemainingBalance: decimal.NewFromInt(100),
		Status:           domain.PrepaymentAvailable,
		CurrencyCode:     "USD",
	}
	req := dto.RecordPaymentRequest{
		DocumentID:  doc.DocumentID,
		CashAmount:  decimal.Zero,
		PaymentDate: time.Now(),
		Prepayment: &dto.PrepaymentPortion{
			PrepaymentID: prepayment.PrepaymentID,
			Amount:       decimal.NewFromInt(100),
		},
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockPrepaymentRepo.On("FindPrepaymentByIDForUpdate", ctx, mock.Anything, prepayment.PrepaymentID).Return(prepayment, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.allAccounts, nil).Once()
	// Customer prepayment application: debit the prepayment liability, credit receivables.
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(entries []domain.Entry) bool {
		return len(entries) == 2 &&
			entries[0].AccountID == suite.custPrepayAccount.AccountID && entries[0].EntryType == domain.Debit &&
			entries[1].AccountID == suite.arAccount.AccountID && entries[1].EntryType == domain.Credit
	}), mock.Anything).Return(nil).Once()
	suite.mockPrepaymentRepo.On("SaveApplicationInTx", ctx, mock.Anything, mock.MatchedBy(func(app domain.PrepaymentApplication) bool {
		return app.PrepaymentID == prepayment.PrepaymentID && app.DocumentID == doc.DocumentID && app.AppliedAmount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()
	suite.mockPrepaymentRepo.On("UpdatePrepaymentBalanceInTx", ctx, mock.Anything, prepayment.PrepaymentID, mock.MatchedBy(func(remaining decimal.Decimal) bool {
		return remaining.IsZero()
	}), domain.PrepaymentFullyApplied, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("UpdateDocumentSettlementInTx", ctx, mock.Anything, doc.DocumentID, mock.MatchedBy(func(due decimal.Decimal) bool {
		return due.IsZero()
	}), domain.DocStatusPaid, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result.PaymentID) // No cash moved, no payment row
	suite.Equal(domain.DocStatusPaid, result.NewStatus)
	suite.True(result.PrepaymentApplied.Equal(decimal.NewFromInt(100)))
	suite.Len(result.TransactionIDs, 1)
	suite.mockPrepaymentRepo.AssertExpectations(suite.T())
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PrepaymentInsufficientBalance() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	prepayment := &domain.Prepayment{
		PrepaymentID:     uuid.NewString(),
		OrgID:            suite.orgID,
		Kind:             domain.KindCustomer,
		Amount:           decimal.NewFromInt(100),
		RemainingBalance: decimal.NewFromInt(50),
		Status:           domain.PrepaymentPartiallyApplied,
	}
	req := dto.RecordPaymentRequest{
		DocumentID:  doc.DocumentID,
		PaymentDate: time.Now(),
		Prepayment: &dto.PrepaymentPortion{
			PrepaymentID: prepayment.PrepaymentID,
			Amount:       decimal.NewFromInt(80),
		},
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockPrepaymentRepo.On("FindPrepaymentByIDForUpdate", ctx, mock.Anything, prepayment.PrepaymentID).Return(prepayment, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockPrepaymentRepo.AssertNotCalled(suite.T(), "SaveApplicationInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PrepaymentKindMismatch() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	prepayment := &domain.Prepayment{
		PrepaymentID:     uuid.NewString(),
		OrgID:            suite.orgID,
		Kind:             domain.KindVendor, // Vendor money cannot settle an invoice
		Amount:           decimal.NewFromInt(100),
		RemainingBalance: decimal.NewFromInt(100),
	}
	req := dto.RecordPaymentRequest{
		DocumentID:  doc.DocumentID,
		PaymentDate: time.Now(),
		Prepayment: &dto.PrepaymentPortion{
			PrepaymentID: prepayment.PrepaymentID,
			Amount:       decimal.NewFromInt(50),
		},
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockPrepaymentRepo.On("FindPrepaymentByIDForUpdate", ctx, mock.Anything, prepayment.PrepaymentID).Return(prepayment, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPartyKindMismatch)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_MixedCashAndCreditClosesBoth() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	credit := &domain.CreditMemo{
		CreditID:         uuid.NewString(),
		OrgID:            suite.orgID,
		Kind:             domain.KindCustomer,
		DocNumber:        "CM-3001",
		Total:            decimal.NewFromInt(70),
		RemainingBalance: decimal.NewFromInt(70),
		Status:           domain.CreditOpen,
	}
	req := dto.RecordPaymentRequest{
		DocumentID:       doc.DocumentID,
		CashAmount:       decimal.NewFromInt(30),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
		Credit: &dto.CreditPortion{
			CreditID: credit.CreditID,
			Amount:   decimal.NewFromInt(70),
		},
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.allAccounts, nil).Twice()
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockDocumentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockCreditRepo.On("FindCreditByIDForUpdate", ctx, mock.Anything, credit.CreditID).Return(credit, nil).Once()
	suite.mockCreditRepo.On("SaveApplicationInTx", ctx, mock.Anything, mock.MatchedBy(func(app domain.CreditApplication) bool {
		return app.CreditID == credit.CreditID && app.AmountApplied.Equal(decimal.NewFromInt(70))
	})).Return(nil).Once()
	// The credit is fully consumed, so it closes.
	suite.mockCreditRepo.On("UpdateCreditBalanceInTx", ctx, mock.Anything, credit.CreditID, mock.MatchedBy(func(remaining decimal.Decimal) bool {
		return remaining.IsZero()
	}), domain.CreditClosed, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("UpdateDocumentSettlementInTx", ctx, mock.Anything, doc.DocumentID, mock.MatchedBy(func(due decimal.Decimal) bool {
		return due.IsZero()
	}), domain.DocStatusPaid, suite.userID).Return(nil).Once()
	suite.mockDocumentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DocStatusPaid, result.NewStatus)
	suite.True(result.CashApplied.Equal(decimal.NewFromInt(30)))
	suite.True(result.CreditApplied.Equal(decimal.NewFromInt(70)))
	suite.Len(result.TransactionIDs, 2)
	suite.mockCreditRepo.AssertExpectations(suite.T())
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_VoidedCreditRejected() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	credit := &domain.CreditMemo{
		CreditID:         uuid.NewString(),
		OrgID:            suite.orgID,
		Kind:             domain.KindCustomer,
		Total:            decimal.NewFromInt(50),
		RemainingBalance: decimal.NewFromInt(50),
		Status:           domain.CreditVoided,
	}
	req := dto.RecordPaymentRequest{
		DocumentID:  doc.DocumentID,
		PaymentDate: time.Now(),
		Credit: &dto.CreditPortion{
			CreditID: credit.CreditID,
			Amount:   decimal.NewFromInt(50),
		},
	}

	suite.expectLockedDocument(ctx, doc)
	suite.mockAccountRepo.On("FindConfiguration", ctx, suite.orgID).Return(suite.config, nil).Once()
	suite.mockCreditRepo.On("FindCreditByIDForUpdate", ctx, mock.Anything, credit.CreditID).Return(credit, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateGuard)
	suite.mockCreditRepo.AssertNotCalled(suite.T(), "SaveApplicationInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_VoidedDocumentRejected() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	doc.IsVoided = true
	doc.Status = domain.DocStatusVoided
	req := dto.RecordPaymentRequest{
		DocumentID:       doc.DocumentID,
		CashAmount:       decimal.NewFromInt(10),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
	}

	suite.expectLockedDocument(ctx, doc)

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateGuard)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NothingToApply() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		DocumentID:  uuid.NewString(),
		CashAmount:  decimal.Zero,
		PaymentDate: time.Now(),
	}

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CashWithoutPaymentAccount() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		DocumentID:  uuid.NewString(),
		CashAmount:  decimal.NewFromInt(25),
		PaymentDate: time.Now(),
	}

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SubCentCashRejected() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		DocumentID:       uuid.NewString(),
		CashAmount:       decimal.RequireFromString("10.005"),
		PaymentAccountID: suite.cashAccount.AccountID,
		PaymentDate:      time.Now(),
	}

	_, err := suite.service.RecordPayment(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentsByDocument_WrongOrgObscured() {
	ctx := context.Background()
	doc := suite.newInvoice(100)
	doc.OrgID = uuid.NewString() // Different org
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.GetPaymentsByDocument(ctx, suite.orgID, doc.DocumentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindPaymentsByDocumentID", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
