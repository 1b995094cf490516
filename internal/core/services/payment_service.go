package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrNothingToApply         = errors.New("payment must apply a positive amount from at least one source")
	ErrOverpayment            = errors.New("applied amount exceeds the document's due balance")
	ErrNegativeCash           = errors.New("cash amount cannot be negative")
	ErrPaymentAccountRequired = errors.New("payment account is required when cash moves")
	ErrDocumentVoided         = errors.New("voided documents cannot accept payments")
	ErrPartyKindMismatch      = errors.New("source party kind does not match the document side")
)

// paymentService is the payment application engine. Every settlement against a
// document, whether funded by new cash, a prepayment, a credit, or any mix,
// runs through RecordPayment so the locking order and the all-or-nothing
// behaviour live in exactly one place.
type paymentService struct {
	BaseService
	documentRepo   portsrepo.DocumentRepositoryFacade
	prepaymentRepo portsrepo.PrepaymentRepositoryFacade
	creditRepo     portsrepo.CreditRepositoryFacade
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
}

// NewPaymentService creates the payment application engine.
func NewPaymentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	prepaymentRepo portsrepo.PrepaymentRepositoryFacade,
	creditRepo portsrepo.CreditRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.PaymentSvc {
	return &paymentService{
		documentRepo:   documentRepo,
		prepaymentRepo: prepaymentRepo,
		creditRepo:     creditRepo,
		ledgerRepo:     ledgerRepo,
		accountRepo:    accountRepo,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvc interface
var _ portssvc.PaymentSvc = (*paymentService)(nil)

// RecordPayment applies cash plus optional prepayment and credit portions to
// one document. The document row is locked first, then any prepayment, then
// any credit; every leg posts its own ledger transaction and the whole
// application commits or rolls back together. Amounts that do not fit the due
// balance are rejected, never clamped.
func (s *paymentService) RecordPayment(ctx context.Context, orgID string, req dto.RecordPaymentRequest, userID string) (*dto.PaymentResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	cash := req.CashAmount
	if cash.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeCash.Error())
	}
	if cash.IsPositive() && !utils.IsPositive2dp(cash) {
		return nil, fmt.Errorf("%w: cash amount must have at most two decimal places", apperrors.ErrValidation)
	}
	if cash.IsPositive() && req.PaymentAccountID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentAccountRequired.Error())
	}

	prepayAmount := decimal.Zero
	if req.Prepayment != nil {
		if !utils.IsPositive2dp(req.Prepayment.Amount) {
			return nil, fmt.Errorf("%w: prepayment portion must be positive with at most two decimal places", apperrors.ErrValidation)
		}
		prepayAmount = req.Prepayment.Amount
	}
	creditAmount := decimal.Zero
	if req.Credit != nil {
		if !utils.IsPositive2dp(req.Credit.Amount) {
			return nil, fmt.Errorf("%w: credit portion must be positive with at most two decimal places", apperrors.ErrValidation)
		}
		creditAmount = req.Credit.Amount
	}

	totalApplied := cash.Add(prepayAmount).Add(creditAmount)
	if !totalApplied.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNothingToApply.Error())
	}

	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.documentRepo.Rollback(ctx, tx)
	}()

	doc, err := s.documentRepo.FindDocumentByIDForUpdate(ctx, tx, req.DocumentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock document for payment", "document_id", req.DocumentID)
		}
		return nil, err
	}
	if doc.OrgID != orgID {
		return nil, apperrors.ErrNotFound
	}
	if doc.IsVoided {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrDocumentVoided.Error())
	}
	if totalApplied.GreaterThan(doc.DueBalance) {
		return nil, fmt.Errorf("%w: %s: applying %s against due balance %s",
			apperrors.ErrInsufficientBalance, ErrOverpayment.Error(),
			totalApplied.String(), doc.DueBalance.String())
	}

	config, err := s.accountRepo.FindConfiguration(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account configuration", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch account configuration: %w", err)
	}

	controlAccountID, err := s.roleAccountID(config, controlRoleFor(doc.DocumentType))
	if err != nil {
		return nil, err
	}

	expectedKind := domain.KindCustomer
	if doc.DocumentType == domain.DocBill {
		expectedKind = domain.KindVendor
	}

	result := &dto.PaymentResult{
		DocumentID:        doc.DocumentID,
		CashApplied:       cash,
		PrepaymentApplied: prepayAmount,
		CreditApplied:     creditAmount,
		TotalApplied:      totalApplied,
	}
	now := time.Now().UTC()

	if cash.IsPositive() {
		paymentID, txnID, err := s.applyCashLeg(ctx, tx, doc, req, cash, controlAccountID, userID, now)
		if err != nil {
			return nil, err
		}
		result.PaymentID = paymentID
		result.TransactionIDs = append(result.TransactionIDs, txnID)
	}

	if req.Prepayment != nil {
		txnID, err := s.applyPrepaymentLeg(ctx, tx, doc, config, req.Prepayment, expectedKind, controlAccountID, userID, now)
		if err != nil {
			return nil, err
		}
		result.TransactionIDs = append(result.TransactionIDs, txnID)
	}

	if req.Credit != nil {
		txnID, err := s.applyCreditLeg(ctx, tx, doc, config, req.Credit, expectedKind, controlAccountID, userID, now)
		if err != nil {
			return nil, err
		}
		result.TransactionIDs = append(result.TransactionIDs, txnID)
	}

	newDue := doc.DueBalance.Sub(totalApplied)
	newStatus := domain.DocStatusPartial
	if newDue.IsZero() {
		newStatus = domain.DocStatusPaid
	}
	if err := s.documentRepo.UpdateDocumentSettlementInTx(ctx, tx, doc.DocumentID, newDue, newStatus, userID); err != nil {
		s.LogError(ctx, err, "Failed to update document settlement", "document_id", doc.DocumentID)
		return nil, fmt.Errorf("failed to update document settlement: %w", err)
	}

	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	result.NewDueBalance = newDue
	result.NewStatus = newStatus
	s.LogInfo(ctx, "Payment recorded",
		"document_id", doc.DocumentID,
		"total_applied", totalApplied.String(),
		"new_status", string(newStatus))
	return result, nil
}

// applyCashLeg posts the cash movement and records the payment row.
// Invoice: debit the payment account, credit receivables.
// Bill: debit payables, credit the payment account.
func (s *paymentService) applyCashLeg(ctx context.Context, tx pgx.Tx, doc *domain.Document, req dto.RecordPaymentRequest, cash decimal.Decimal, controlAccountID string, userID string, now time.Time) (string, string, error) {
	cashDebit, cashCredit := req.PaymentAccountID, controlAccountID
	if doc.DocumentType == domain.DocBill {
		cashDebit, cashCredit = controlAccountID, req.PaymentAccountID
	}

	method := req.Method
	if method == "" {
		method = domain.MethodOther
	}

	txnID, err := s.postLeg(ctx, tx, doc, legPosting{
		debitAccountID:  cashDebit,
		creditAccountID: cashCredit,
		amount:          cash,
		date:            req.PaymentDate,
		description:     fmt.Sprintf("Payment for %s %s", doc.DocumentType, doc.DocNumber),
		userID:          userID,
		now:             now,
	})
	if err != nil {
		return "", "", err
	}

	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		OrgID:            doc.OrgID,
		DocumentID:       doc.DocumentID,
		Amount:           cash,
		PaymentAccountID: req.PaymentAccountID,
		PaymentDate:      req.PaymentDate,
		Method:           method,
		TransactionID:    txnID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.documentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", "document_id", doc.DocumentID)
		return "", "", fmt.Errorf("failed to save payment: %w", err)
	}

	return payment.PaymentID, txnID, nil
}

// applyPrepaymentLeg consumes part of a prepayment's remaining balance.
// Customer: debit the prepayment liability, credit receivables.
// Vendor: debit payables, credit the prepayment asset.
func (s *paymentService) applyPrepaymentLeg(ctx context.Context, tx pgx.Tx, doc *domain.Document, config *domain.AccountConfiguration, portion *dto.PrepaymentPortion, expectedKind domain.PartyKind, controlAccountID string, userID string, now time.Time) (string, error) {
	prepayment, err := s.prepaymentRepo.FindPrepaymentByIDForUpdate(ctx, tx, portion.PrepaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock prepayment", "prepayment_id", portion.PrepaymentID)
		}
		return "", err
	}
	if prepayment.OrgID != doc.OrgID {
		return "", apperrors.ErrNotFound
	}
	if prepayment.Kind != expectedKind {
		return "", fmt.Errorf("%w: %s prepayment cannot settle a %s",
			ErrPartyKindMismatch, prepayment.Kind, doc.DocumentType)
	}
	if portion.Amount.GreaterThan(prepayment.RemainingBalance) {
		return "", fmt.Errorf("%w: prepayment %s has %s remaining, %s requested",
			apperrors.ErrInsufficientBalance, prepayment.PrepaymentID,
			prepayment.RemainingBalance.String(), portion.Amount.String())
	}

	role := domain.RoleCustomerPrepayments
	if prepayment.Kind == domain.KindVendor {
		role = domain.RoleVendorPrepayments
	}
	holdingAccountID, err := s.roleAccountID(config, role)
	if err != nil {
		return "", err
	}

	debit, credit := holdingAccountID, controlAccountID
	if prepayment.Kind == domain.KindVendor {
		debit, credit = controlAccountID, holdingAccountID
	}

	txnID, err := s.postLeg(ctx, tx, doc, legPosting{
		debitAccountID:  debit,
		creditAccountID: credit,
		amount:          portion.Amount,
		date:            now,
		description:     fmt.Sprintf("Prepayment applied to %s %s", doc.DocumentType, doc.DocNumber),
		userID:          userID,
		now:             now,
	})
	if err != nil {
		return "", err
	}

	application := domain.PrepaymentApplication{
		ApplicationID: uuid.NewString(),
		PrepaymentID:  prepayment.PrepaymentID,
		DocumentID:    doc.DocumentID,
		AppliedAmount: portion.Amount,
		TransactionID: txnID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.prepaymentRepo.SaveApplicationInTx(ctx, tx, application); err != nil {
		s.LogError(ctx, err, "Failed to save prepayment application", "prepayment_id", prepayment.PrepaymentID)
		return "", fmt.Errorf("failed to save prepayment application: %w", err)
	}

	prepayment.RemainingBalance = prepayment.RemainingBalance.Sub(portion.Amount)
	if err := s.prepaymentRepo.UpdatePrepaymentBalanceInTx(ctx, tx, prepayment.PrepaymentID, prepayment.RemainingBalance, prepayment.DeriveStatus(), userID); err != nil {
		s.LogError(ctx, err, "Failed to update prepayment balance", "prepayment_id", prepayment.PrepaymentID)
		return "", fmt.Errorf("failed to update prepayment balance: %w", err)
	}

	return txnID, nil
}

// applyCreditLeg consumes part of a credit's remaining balance.
// Customer: debit the unused-credits liability, credit receivables.
// Vendor: debit payables, credit the unused-credits asset.
func (s *paymentService) applyCreditLeg(ctx context.Context, tx pgx.Tx, doc *domain.Document, config *domain.AccountConfiguration, portion *dto.CreditPortion, expectedKind domain.PartyKind, controlAccountID string, userID string, now time.Time) (string, error) {
	credit, err := s.creditRepo.FindCreditByIDForUpdate(ctx, tx, portion.CreditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock credit", "credit_id", portion.CreditID)
		}
		return "", err
	}
	if credit.OrgID != doc.OrgID {
		return "", apperrors.ErrNotFound
	}
	if credit.Kind != expectedKind {
		return "", fmt.Errorf("%w: %s credit cannot settle a %s",
			ErrPartyKindMismatch, credit.Kind, doc.DocumentType)
	}
	if credit.Status != domain.CreditOpen {
		return "", fmt.Errorf("%w: credit %s is %s", apperrors.ErrStateGuard, credit.CreditID, credit.Status)
	}
	if portion.Amount.GreaterThan(credit.RemainingBalance) {
		return "", fmt.Errorf("%w: credit %s has %s remaining, %s requested",
			apperrors.ErrInsufficientBalance, credit.CreditID,
			credit.RemainingBalance.String(), portion.Amount.String())
	}

	role := domain.RoleUnusedCustomerCredit
	if credit.Kind == domain.KindVendor {
		role = domain.RoleUnusedVendorCredit
	}
	holdingAccountID, err := s.roleAccountID(config, role)
	if err != nil {
		return "", err
	}

	debit, credit2 := holdingAccountID, controlAccountID
	if credit.Kind == domain.KindVendor {
		debit, credit2 = controlAccountID, holdingAccountID
	}

	txnID, err := s.postLeg(ctx, tx, doc, legPosting{
		debitAccountID:  debit,
		creditAccountID: credit2,
		amount:          portion.Amount,
		date:            now,
		description:     fmt.Sprintf("Credit %s applied to %s %s", credit.DocNumber, doc.DocumentType, doc.DocNumber),
		userID:          userID,
		now:             now,
	})
	if err != nil {
		return "", err
	}

	application := domain.CreditApplication{
		ApplicationID: uuid.NewString(),
		CreditID:      credit.CreditID,
		DocumentID:    doc.DocumentID,
		AmountApplied: portion.Amount,
		TransactionID: txnID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.creditRepo.SaveApplicationInTx(ctx, tx, application); err != nil {
		s.LogError(ctx, err, "Failed to save credit application", "credit_id", credit.CreditID)
		return "", fmt.Errorf("failed to save credit application: %w", err)
	}

	credit.RemainingBalance = credit.RemainingBalance.Sub(portion.Amount)
	if err := s.creditRepo.UpdateCreditBalanceInTx(ctx, tx, credit.CreditID, credit.RemainingBalance, credit.DeriveStatus(), userID); err != nil {
		s.LogError(ctx, err, "Failed to update credit balance", "credit_id", credit.CreditID)
		return "", fmt.Errorf("failed to update credit balance: %w", err)
	}

	return txnID, nil
}

// legPosting describes one two-entry settlement transaction.
type legPosting struct {
	debitAccountID  string
	creditAccountID string
	amount          decimal.Decimal
	date            time.Time
	description     string
	userID          string
	now             time.Time
}

// postLeg builds and saves one balanced two-entry transaction inside the
// shared database transaction, linked back to the settled document.
func (s *paymentService) postLeg(ctx context.Context, tx pgx.Tx, doc *domain.Document, leg legPosting) (string, error) {
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, []string{leg.debitAccountID, leg.creditAccountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for settlement leg", "document_id", doc.DocumentID)
		return "", fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range []string{leg.debitAccountID, leg.creditAccountID} {
		acc, found := accountsMap[id]
		if !found {
			return "", fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if acc.OrgID != doc.OrgID {
			return "", fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return "", fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	transactionID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     leg.now,
		CreatedBy:     leg.userID,
		LastUpdatedAt: leg.now,
		LastUpdatedBy: leg.userID,
	}
	currencyCode := accountsMap[leg.debitAccountID].CurrencyCode

	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     leg.debitAccountID,
			Amount:        leg.amount,
			EntryType:     domain.Debit,
			CurrencyCode:  currencyCode,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     leg.creditAccountID,
			Amount:        leg.amount,
			EntryType:     domain.Credit,
			CurrencyCode:  currencyCode,
			AuditFields:   audit,
		},
	}

	balanceChanges, err := calculateBalanceChanges(entries, accountsMap)
	if err != nil {
		return "", fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		OrgID:         doc.OrgID,
		Date:          leg.date,
		Description:   leg.description,
		CurrencyCode:  currencyCode,
		Status:        domain.Posted,
		Source: domain.DocumentRef{
			DocumentType: doc.DocumentType,
			DocumentID:   doc.DocumentID,
		},
		AuditFields: audit,
	}

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post settlement leg", "document_id", doc.DocumentID)
		return "", fmt.Errorf("failed to post settlement leg: %w", err)
	}

	return transactionID, nil
}

// roleAccountID resolves a system role to its configured account ID.
func (s *paymentService) roleAccountID(config *domain.AccountConfiguration, role domain.SystemRole) (string, error) {
	accountID, ok := config.AccountFor(role)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRoleNotConfigured, role)
	}
	return accountID, nil
}

// controlRoleFor maps a document type to its control account role.
func controlRoleFor(docType domain.DocumentType) domain.SystemRole {
	if docType == domain.DocBill {
		return domain.RoleAccountsPayable
	}
	return domain.RoleAccountsReceivable
}

// GetPaymentsByDocument retrieves the cash payments recorded against a document.
func (s *paymentService) GetPaymentsByDocument(ctx context.Context, orgID string, documentID string) ([]domain.Payment, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OrgID != orgID {
		return nil, apperrors.ErrNotFound
	}

	payments, err := s.documentRepo.FindPaymentsByDocumentID(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch payments for document", "document_id", documentID)
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	return payments, nil
}
