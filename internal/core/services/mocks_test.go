package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PaymentService ---

type MockPaymentService struct {
	mock.Mock
}

var _ portssvc.PaymentSvc = (*MockPaymentService)(nil)

func (m *MockPaymentService) RecordPayment(ctx context.Context, orgID string, req dto.RecordPaymentRequest, userID string) (*dto.PaymentResult, error) {
	args := m.Called(ctx, orgID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) GetPaymentsByDocument(ctx context.Context, orgID string, documentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, orgID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, orgID string, code int) (*domain.Account, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindUsedCodes(ctx context.Context, orgID string, low int, high int) ([]int, error) {
	args := m.Called(ctx, orgID, low, high)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockAccountRepository) FindConfiguration(ctx context.Context, orgID string) (*domain.AccountConfiguration, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountConfiguration), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByOrg(ctx context.Context, orgID string, limit int, nextToken *string, includeReversals bool) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, orgID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListEntriesByAccountID(ctx context.Context, orgID, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, orgID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Entry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, tx, txn, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateTransactionStatusAndLinks(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus, reversingTransactionID *string, originalTransactionID *string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, transactionID, status, reversingTransactionID, originalTransactionID, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindItemsByDocumentID(ctx context.Context, documentID string) ([]domain.DocumentItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentItem), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, orgID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, orgID, docType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Document), returnedNextToken, args.Error(2)
}

func (m *MockDocumentRepository) SaveDocumentInTx(ctx context.Context, tx pgx.Tx, doc domain.Document, items []domain.DocumentItem) error {
	args := m.Called(ctx, tx, doc, items)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, tx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateDocumentSettlementInTx(ctx context.Context, tx pgx.Tx, documentID string, dueBalance decimal.Decimal, status domain.DocumentStatus, userID string) error {
	args := m.Called(ctx, tx, documentID, dueBalance, status, userID)
	return args.Error(0)
}

func (m *MockDocumentRepository) MarkDocumentVoidedInTx(ctx context.Context, tx pgx.Tx, doc domain.Document) error {
	args := m.Called(ctx, tx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockDocumentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockDocumentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDocumentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDocumentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PrepaymentRepository ---

type MockPrepaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PrepaymentRepositoryFacade = (*MockPrepaymentRepository)(nil)

func (m *MockPrepaymentRepository) FindPrepaymentByID(ctx context.Context, prepaymentID string) (*domain.Prepayment, error) {
	args := m.Called(ctx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prepayment), args.Error(1)
}

func (m *MockPrepaymentRepository) ListPrepaymentsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.Prepayment, *string, error) {
	args := m.Called(ctx, orgID, partyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Prepayment), returnedNextToken, args.Error(2)
}

func (m *MockPrepaymentRepository) FindApplicationsByPrepaymentID(ctx context.Context, prepaymentID string) ([]domain.PrepaymentApplication, error) {
	args := m.Called(ctx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PrepaymentApplication), args.Error(1)
}

func (m *MockPrepaymentRepository) SavePrepaymentInTx(ctx context.Context, tx pgx.Tx, prepayment domain.Prepayment) error {
	args := m.Called(ctx, tx, prepayment)
	return args.Error(0)
}

func (m *MockPrepaymentRepository) FindPrepaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, prepaymentID string) (*domain.Prepayment, error) {
	args := m.Called(ctx, tx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prepayment), args.Error(1)
}

func (m *MockPrepaymentRepository) UpdatePrepaymentBalanceInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, remaining decimal.Decimal, status domain.PrepaymentStatus, userID string) error {
	args := m.Called(ctx, tx, prepaymentID, remaining, status, userID)
	return args.Error(0)
}

func (m *MockPrepaymentRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, application domain.PrepaymentApplication) error {
	args := m.Called(ctx, tx, application)
	return args.Error(0)
}

func (m *MockPrepaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPrepaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPrepaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CreditRepository ---

type MockCreditRepository struct {
	mock.Mock
}

var _ portsrepo.CreditRepositoryFacade = (*MockCreditRepository)(nil)

func (m *MockCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.CreditMemo, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditMemo), args.Error(1)
}

func (m *MockCreditRepository) FindLinesByCreditID(ctx context.Context, creditID string) ([]domain.CreditLine, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditLine), args.Error(1)
}

func (m *MockCreditRepository) ListCreditsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.CreditMemo, *string, error) {
	args := m.Called(ctx, orgID, partyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.CreditMemo), returnedNextToken, args.Error(2)
}

func (m *MockCreditRepository) FindApplicationsByCreditID(ctx context.Context, creditID string) ([]domain.CreditApplication, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditApplication), args.Error(1)
}

func (m *MockCreditRepository) FindRefundsByCreditID(ctx context.Context, creditID string) ([]domain.Refund, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refund), args.Error(1)
}

func (m *MockCreditRepository) SaveCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.CreditMemo, lines []domain.CreditLine) error {
	args := m.Called(ctx, tx, credit, lines)
	return args.Error(0)
}

func (m *MockCreditRepository) FindCreditByIDForUpdate(ctx context.Context, tx pgx.Tx, creditID string) (*domain.CreditMemo, error) {
	args := m.Called(ctx, tx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditMemo), args.Error(1)
}

func (m *MockCreditRepository) UpdateCreditBalanceInTx(ctx context.Context, tx pgx.Tx, creditID string, remaining decimal.Decimal, status domain.CreditStatus, userID string) error {
	args := m.Called(ctx, tx, creditID, remaining, status, userID)
	return args.Error(0)
}

func (m *MockCreditRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, application domain.CreditApplication) error {
	args := m.Called(ctx, tx, application)
	return args.Error(0)
}

func (m *MockCreditRepository) SaveRefundInTx(ctx context.Context, tx pgx.Tx, refund domain.Refund) error {
	args := m.Called(ctx, tx, refund)
	return args.Error(0)
}

func (m *MockCreditRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCreditRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCreditRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, orgID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, orgID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, orgID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).([]domain.AccountAmount), args.Get(2).([]domain.AccountAmount), args.Error(3)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, orgID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, orgID, asOf)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).([]domain.AccountAmount), args.Get(2).([]domain.AccountAmount), args.Error(3)
}
