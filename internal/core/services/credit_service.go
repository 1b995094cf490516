package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrLinesRequired         = errors.New("item-based credits require at least one line")
	ErrLinesNotAllowed       = errors.New("general credits carry a credit account instead of lines")
	ErrCreditAccountRequired = errors.New("general credits require a credit account")
	ErrCreditNotVoidable     = errors.New("credits with applications or refunds cannot be voided")
	ErrCreditAlreadyVoided   = errors.New("credit is already voided")
)

// creditService manages credit memos (customer) and vendor credits. Applying a
// credit to a document is delegated to the payment engine; issuing, refunding
// and voiding live here.
type creditService struct {
	BaseService
	creditRepo  portsrepo.CreditRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	paymentSvc  portssvc.PaymentSvc
}

// NewCreditService creates a new credit service.
func NewCreditService(creditRepo portsrepo.CreditRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, paymentSvc portssvc.PaymentSvc) portssvc.CreditSvcFacade {
	return &creditService{
		creditRepo:  creditRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		paymentSvc:  paymentSvc,
	}
}

// Ensure creditService implements the portssvc.CreditSvcFacade interface
var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// IssueCredit persists a new credit memo or vendor credit and posts its issue
// transaction.
// Customer: debit the reduced revenue accounts, credit the unused-credits liability.
// Vendor: debit the unused-credits asset, credit the reduced expense accounts.
func (s *creditService) IssueCredit(ctx context.Context, orgID string, req dto.IssueCreditRequest, userID string) (*domain.CreditMemo, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !utils.IsPositive2dp(req.Total) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive.Error())
	}
	if (req.RelatedDocumentType == "") != (req.RelatedDocumentID == "") {
		return nil, fmt.Errorf("%w: related document type and ID must be set together", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	creditID := uuid.NewString()

	var lines []domain.CreditLine
	switch req.CreditType {
	case domain.CreditItemBased:
		if len(req.Lines) == 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLinesRequired.Error())
		}
		lines = make([]domain.CreditLine, len(req.Lines))
		lineSum := decimal.Zero
		for i, lineReq := range req.Lines {
			lineTotal := utils.Round2(lineReq.Quantity.Mul(lineReq.UnitPrice))
			lines[i] = domain.CreditLine{
				LineID:    uuid.NewString(),
				CreditID:  creditID,
				ProductID: lineReq.ProductID,
				Name:      lineReq.Name,
				Quantity:  lineReq.Quantity,
				UnitPrice: lineReq.UnitPrice,
				AccountID: lineReq.AccountID,
				LineTotal: lineTotal,
			}
			lineSum = lineSum.Add(lineTotal)
		}
		if !lineSum.Equal(req.Total) {
			return nil, fmt.Errorf("%w: total %s vs line sum %s: %s",
				apperrors.ErrInvariantViolation, req.Total.String(), lineSum.String(), ErrTotalMismatch.Error())
		}
	case domain.CreditGeneral:
		if len(req.Lines) > 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLinesNotAllowed.Error())
		}
		if req.CreditAccountID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCreditAccountRequired.Error())
		}
	}

	config, err := s.accountRepo.FindConfiguration(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account configuration", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch account configuration: %w", err)
	}
	role := domain.RoleUnusedCustomerCredit
	if req.Kind == domain.KindVendor {
		role = domain.RoleUnusedVendorCredit
	}
	holdingAccountID, ok := config.AccountFor(role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotConfigured, role)
	}

	// The holding account takes the full total on one side; the reduced
	// revenue or expense accounts take the other side.
	holdingEntryType := domain.Credit // Customer: liability grows
	counterEntryType := domain.Debit
	if req.Kind == domain.KindVendor {
		holdingEntryType = domain.Debit // Vendor: asset grows
		counterEntryType = domain.Credit
	}

	transactionID := uuid.NewString()
	entries := make([]domain.Entry, 0, len(lines)+1)
	accountIDs := []string{holdingAccountID}

	if req.CreditType == domain.CreditItemBased {
		for _, line := range lines {
			entries = append(entries, domain.Entry{
				EntryID:       uuid.NewString(),
				TransactionID: transactionID,
				AccountID:     line.AccountID,
				Amount:        line.LineTotal,
				EntryType:     counterEntryType,
				Notes:         line.Name,
				AuditFields:   audit,
			})
			accountIDs = append(accountIDs, line.AccountID)
		}
	} else {
		entries = append(entries, domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     req.CreditAccountID,
			Amount:        req.Total,
			EntryType:     counterEntryType,
			Notes:         req.Reason,
			AuditFields:   audit,
		})
		accountIDs = append(accountIDs, req.CreditAccountID)
	}
	entries = append(entries, domain.Entry{
		EntryID:       uuid.NewString(),
		TransactionID: transactionID,
		AccountID:     holdingAccountID,
		Amount:        req.Total,
		EntryType:     holdingEntryType,
		AuditFields:   audit,
	})

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for credit issue", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	currencyCode := ""
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found || acc.OrgID != orgID {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if currencyCode == "" {
			currencyCode = acc.CurrencyCode
		}
	}
	for i := range entries {
		entries[i].CurrencyCode = currencyCode
	}

	balanceChanges, err := calculateBalanceChanges(entries, accountsMap)
	if err != nil {
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	sourceType := domain.DocCreditMemo
	if req.Kind == domain.KindVendor {
		sourceType = domain.DocVendorCredit
	}
	txn := domain.Transaction{
		TransactionID: transactionID,
		OrgID:         orgID,
		Date:          req.Date,
		Description:   fmt.Sprintf("%s %s", sourceType, req.DocNumber),
		CurrencyCode:  currencyCode,
		Status:        domain.Posted,
		Source: domain.DocumentRef{
			DocumentType: sourceType,
			DocumentID:   creditID,
		},
		AuditFields: audit,
	}

	credit := domain.CreditMemo{
		CreditID:         creditID,
		OrgID:            orgID,
		Kind:             req.Kind,
		CreditType:       req.CreditType,
		PartyID:          req.PartyID,
		DocNumber:        req.DocNumber,
		Date:             req.Date,
		CurrencyCode:     currencyCode,
		Total:            req.Total,
		RemainingBalance: req.Total,
		Status:           domain.CreditOpen,
		Reason:           req.Reason,
		RelatedDocument: domain.DocumentRef{
			DocumentType: req.RelatedDocumentType,
			DocumentID:   req.RelatedDocumentID,
		},
		CreditAccountID: req.CreditAccountID,
		TransactionID:   transactionID,
		AuditFields:     audit,
	}

	tx, err := s.creditRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.creditRepo.Rollback(ctx, tx)
	}()

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post credit issue transaction", "credit_id", creditID)
		return nil, fmt.Errorf("failed to post credit issue transaction: %w", err)
	}
	if err := s.creditRepo.SaveCreditInTx(ctx, tx, credit, lines); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save credit", "credit_id", creditID)
		}
		return nil, err
	}

	if err := s.creditRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Credit issued", "credit_id", creditID, "doc_number", req.DocNumber, "total", req.Total.String())
	credit.Lines = lines
	return &credit, nil
}

// ApplyCredit applies part of a credit to a document through the payment
// engine, with no new cash involved.
func (s *creditService) ApplyCredit(ctx context.Context, orgID string, req dto.ApplyCreditRequest, userID string) (*dto.PaymentResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	return s.paymentSvc.RecordPayment(ctx, orgID, dto.RecordPaymentRequest{
		DocumentID:  req.DocumentID,
		CashAmount:  decimal.Zero,
		PaymentDate: time.Now().UTC(),
		Credit: &dto.CreditPortion{
			CreditID: req.CreditID,
			Amount:   req.Amount,
		},
	}, userID)
}

// IssueRefund pays out (customer) or collects back (vendor) part of a
// credit's remaining balance in cash.
// Customer: debit the unused-credits liability, credit the refund account.
// Vendor: debit the refund account, credit the unused-credits asset.
func (s *creditService) IssueRefund(ctx context.Context, orgID string, req dto.IssueRefundRequest, userID string) (*domain.Refund, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !utils.IsPositive2dp(req.Amount) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive.Error())
	}

	tx, err := s.creditRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.creditRepo.Rollback(ctx, tx)
	}()

	credit, err := s.creditRepo.FindCreditByIDForUpdate(ctx, tx, req.CreditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock credit for refund", "credit_id", req.CreditID)
		}
		return nil, err
	}
	if credit.OrgID != orgID {
		return nil, apperrors.ErrNotFound
	}
	if credit.Status != domain.CreditOpen {
		return nil, fmt.Errorf("%w: credit %s is %s", apperrors.ErrStateGuard, credit.CreditID, credit.Status)
	}
	if req.Amount.GreaterThan(credit.RemainingBalance) {
		return nil, fmt.Errorf("%w: credit %s has %s remaining, %s requested",
			apperrors.ErrInsufficientBalance, credit.CreditID,
			credit.RemainingBalance.String(), req.Amount.String())
	}

	config, err := s.accountRepo.FindConfiguration(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account configuration", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch account configuration: %w", err)
	}
	role := domain.RoleUnusedCustomerCredit
	if credit.Kind == domain.KindVendor {
		role = domain.RoleUnusedVendorCredit
	}
	holdingAccountID, ok := config.AccountFor(role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotConfigured, role)
	}

	accountIDs := []string{holdingAccountID, req.RefundAccountID}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for refund", "credit_id", req.CreditID)
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found || acc.OrgID != orgID {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	refundID := uuid.NewString()
	transactionID := uuid.NewString()
	currencyCode := accountsMap[req.RefundAccountID].CurrencyCode

	// Customer refunds pay cash out; vendor refunds bring cash back in.
	debit, creditAccount := holdingAccountID, req.RefundAccountID
	if credit.Kind == domain.KindVendor {
		debit, creditAccount = req.RefundAccountID, holdingAccountID
	}

	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     debit,
			Amount:        req.Amount,
			EntryType:     domain.Debit,
			CurrencyCode:  currencyCode,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     creditAccount,
			Amount:        req.Amount,
			EntryType:     domain.Credit,
			CurrencyCode:  currencyCode,
			AuditFields:   audit,
		},
	}

	balanceChanges, err := calculateBalanceChanges(entries, accountsMap)
	if err != nil {
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		OrgID:         orgID,
		Date:          req.RefundDate,
		Description:   fmt.Sprintf("Refund against credit %s", credit.DocNumber),
		CurrencyCode:  currencyCode,
		Status:        domain.Posted,
		Source: domain.DocumentRef{
			DocumentType: domain.DocRefund,
			DocumentID:   refundID,
		},
		AuditFields: audit,
	}

	method := req.Method
	if method == "" {
		method = domain.MethodOther
	}
	refund := domain.Refund{
		RefundID:        refundID,
		OrgID:           orgID,
		CreditID:        credit.CreditID,
		RefundAmount:    req.Amount,
		RefundAccountID: req.RefundAccountID,
		RefundDate:      req.RefundDate,
		Method:          method,
		TransactionID:   transactionID,
		AuditFields:     audit,
	}

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post refund transaction", "credit_id", credit.CreditID)
		return nil, fmt.Errorf("failed to post refund transaction: %w", err)
	}
	if err := s.creditRepo.SaveRefundInTx(ctx, tx, refund); err != nil {
		s.LogError(ctx, err, "Failed to save refund", "refund_id", refundID)
		return nil, err
	}

	credit.RemainingBalance = credit.RemainingBalance.Sub(req.Amount)
	if err := s.creditRepo.UpdateCreditBalanceInTx(ctx, tx, credit.CreditID, credit.RemainingBalance, credit.DeriveStatus(), userID); err != nil {
		s.LogError(ctx, err, "Failed to update credit balance", "credit_id", credit.CreditID)
		return nil, fmt.Errorf("failed to update credit balance: %w", err)
	}

	if err := s.creditRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Refund issued", "refund_id", refundID, "credit_id", credit.CreditID, "amount", req.Amount.String())
	return &refund, nil
}

// VoidCredit voids a fully unapplied credit and reverses its issue
// transaction. Credits that have been applied or refunded, even partially,
// cannot be voided.
func (s *creditService) VoidCredit(ctx context.Context, orgID string, creditID string, userID string) (*domain.CreditMemo, error) {
	tx, err := s.creditRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.creditRepo.Rollback(ctx, tx)
	}()

	credit, err := s.creditRepo.FindCreditByIDForUpdate(ctx, tx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock credit for void", "credit_id", creditID)
		}
		return nil, err
	}
	if credit.OrgID != orgID {
		return nil, apperrors.ErrNotFound
	}
	if credit.Status == domain.CreditVoided {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrCreditAlreadyVoided.Error())
	}
	if !credit.RemainingBalance.Equal(credit.Total) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrCreditNotVoidable.Error())
	}

	original, err := s.ledgerRepo.FindTransactionByID(ctx, credit.TransactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch issue transaction for void", "credit_id", creditID)
		return nil, fmt.Errorf("failed to fetch issue transaction: %w", err)
	}
	originalEntries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, credit.TransactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch issue entries for void", "credit_id", creditID)
		return nil, fmt.Errorf("failed to fetch issue entries: %w", err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	reversingID := uuid.NewString()

	reversingEntries := make([]domain.Entry, len(originalEntries))
	accountIDs := make([]string, 0, len(originalEntries))
	for i, origEntry := range originalEntries {
		accountIDs = append(accountIDs, origEntry.AccountID)
		newType := domain.Credit
		if origEntry.EntryType == domain.Credit {
			newType = domain.Debit
		}
		reversingEntries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: reversingID,
			AccountID:     origEntry.AccountID,
			Amount:        origEntry.Amount,
			EntryType:     newType,
			CurrencyCode:  origEntry.CurrencyCode,
			Notes:         origEntry.Notes,
			AuditFields:   audit,
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for credit void", "credit_id", creditID)
		return nil, fmt.Errorf("failed to fetch accounts for void: %w", err)
	}
	balanceChanges, err := calculateBalanceChanges(reversingEntries, accountsMap)
	if err != nil {
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	reversing := domain.Transaction{
		TransactionID:         reversingID,
		OrgID:                 orgID,
		Date:                  original.Date,
		Description:           fmt.Sprintf("Void of credit %s", credit.DocNumber),
		CurrencyCode:          original.CurrencyCode,
		Status:                domain.Posted,
		Source:                original.Source,
		OriginalTransactionID: original.TransactionID,
		AuditFields:           audit,
	}

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, reversing, reversingEntries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post credit void reversal", "credit_id", creditID)
		return nil, fmt.Errorf("failed to post void reversal: %w", err)
	}
	if err := s.ledgerRepo.UpdateTransactionStatusAndLinks(ctx, tx, original.TransactionID, domain.Reversed, &reversingID, nil, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark issue transaction reversed", "credit_id", creditID)
		return nil, fmt.Errorf("failed to update issue transaction: %w", err)
	}

	// The remaining balance stays on record; the VOIDED status alone blocks
	// any further application or refund.
	if err := s.creditRepo.UpdateCreditBalanceInTx(ctx, tx, credit.CreditID, credit.RemainingBalance, domain.CreditVoided, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark credit voided", "credit_id", creditID)
		return nil, fmt.Errorf("failed to mark credit voided: %w", err)
	}

	if err := s.creditRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Credit voided", "credit_id", creditID, "reversing_transaction_id", reversingID)
	credit.Status = domain.CreditVoided
	credit.LastUpdatedAt = now
	credit.LastUpdatedBy = userID
	return credit, nil
}

// GetCreditByID retrieves a specific credit with its lines.
func (s *creditService) GetCreditByID(ctx context.Context, orgID string, creditID string) (*domain.CreditMemo, error) {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find credit by ID", "credit_id", creditID)
		}
		return nil, err
	}

	if credit.OrgID != orgID {
		// Obscure existence of credits from other orgs.
		return nil, apperrors.ErrNotFound
	}

	if credit.CreditType == domain.CreditItemBased {
		lines, err := s.creditRepo.FindLinesByCreditID(ctx, creditID)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch lines for credit", "credit_id", creditID)
			return nil, fmt.Errorf("failed to retrieve lines for credit %s: %w", creditID, apperrors.ErrInternal)
		}
		credit.Lines = lines
	}

	return credit, nil
}

// ListCreditsByParty retrieves the credits of one party.
func (s *creditService) ListCreditsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.CreditMemo, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	credits, token, err := s.creditRepo.ListCreditsByParty(ctx, orgID, partyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits", "org_id", orgID, "party_id", partyID)
		return nil, nil, fmt.Errorf("failed to retrieve credits: %w", err)
	}

	return credits, token, nil
}

// GetApplications retrieves the application history of a credit.
func (s *creditService) GetApplications(ctx context.Context, orgID string, creditID string) ([]domain.CreditApplication, error) {
	if _, err := s.GetCreditByID(ctx, orgID, creditID); err != nil {
		return nil, err
	}

	applications, err := s.creditRepo.FindApplicationsByCreditID(ctx, creditID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch credit applications", "credit_id", creditID)
		return nil, fmt.Errorf("failed to retrieve applications: %w", err)
	}
	return applications, nil
}

// GetRefunds retrieves the refunds issued against a credit.
func (s *creditService) GetRefunds(ctx context.Context, orgID string, creditID string) ([]domain.Refund, error) {
	if _, err := s.GetCreditByID(ctx, orgID, creditID); err != nil {
		return nil, err
	}

	refunds, err := s.creditRepo.FindRefundsByCreditID(ctx, creditID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch refunds", "credit_id", creditID)
		return nil, fmt.Errorf("failed to retrieve refunds: %w", err)
	}
	return refunds, nil
}
