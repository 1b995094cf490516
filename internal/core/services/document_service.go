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
	ErrTotalMismatch             = errors.New("document total does not equal the sum of line totals")
	ErrTotalNotPositive          = errors.New("document total must be positive with at most two decimal places")
	ErrRoleNotConfigured         = errors.New("system role is not configured for this org")
	ErrAlreadyVoided             = errors.New("document is already voided")
	ErrCannotVoidSettledDocument = errors.New("documents with payments applied cannot be voided")
)

// documentService provides invoice and bill operations. Invoices and bills
// share one lifecycle; they differ only in which control account their
// posting hits.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
	}
}

// Ensure documentService implements the portssvc.DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateInvoice persists a new invoice and posts its opening transaction:
// debit accounts receivable, credit each line's revenue account.
func (s *documentService) CreateInvoice(ctx context.Context, orgID string, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	return s.createDocument(ctx, orgID, domain.DocInvoice, req, userID)
}

// CreateBill persists a new bill and posts its opening transaction:
// debit each line's expense account, credit accounts payable.
func (s *documentService) CreateBill(ctx context.Context, orgID string, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	return s.createDocument(ctx, orgID, domain.DocBill, req, userID)
}

func (s *documentService) createDocument(ctx context.Context, orgID string, docType domain.DocumentType, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if !utils.IsPositive2dp(req.Total) {
		return nil, fmt.Errorf("%w", ErrTotalNotPositive)
	}

	now := time.Now().UTC()
	documentID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	// Line totals round once; the declared total must match their exact sum.
	items := make([]domain.DocumentItem, len(req.Items))
	lineSum := decimal.Zero
	for i, itemReq := range req.Items {
		lineTotal := utils.Round2(itemReq.Quantity.Mul(itemReq.UnitPrice))
		items[i] = domain.DocumentItem{
			ItemID:     uuid.NewString(),
			DocumentID: documentID,
			ProductID:  itemReq.ProductID,
			Name:       itemReq.Name,
			Quantity:   itemReq.Quantity,
			UnitPrice:  itemReq.UnitPrice,
			AccountID:  itemReq.AccountID,
			LineTotal:  lineTotal,
		}
		lineSum = lineSum.Add(lineTotal)
	}
	if !lineSum.Equal(req.Total) {
		return nil, fmt.Errorf("%w: total %s vs line sum %s: %s",
			apperrors.ErrInvariantViolation, req.Total.String(), lineSum.String(), ErrTotalMismatch.Error())
	}

	controlAccount, err := s.resolveControlAccount(ctx, orgID, docType)
	if err != nil {
		return nil, err
	}

	transactionID := uuid.NewString()
	entries := make([]domain.Entry, 0, len(items)+1)

	controlEntryType := domain.Debit // Invoice raises a receivable
	lineEntryType := domain.Credit
	if docType == domain.DocBill {
		controlEntryType = domain.Credit // Bill raises a payable
		lineEntryType = domain.Debit
	}

	entries = append(entries, domain.Entry{
		EntryID:       uuid.NewString(),
		TransactionID: transactionID,
		AccountID:     controlAccount.AccountID,
		Amount:        req.Total,
		EntryType:     controlEntryType,
		CurrencyCode:  controlAccount.CurrencyCode,
		AuditFields:   audit,
	})
	for _, item := range items {
		entries = append(entries, domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     item.AccountID,
			Amount:        item.LineTotal,
			EntryType:     lineEntryType,
			CurrencyCode:  controlAccount.CurrencyCode,
			Notes:         item.Name,
			AuditFields:   audit,
		})
	}

	accountIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		accountIDs = append(accountIDs, entry.AccountID)
	}
	accountsMap, err := s.fetchActiveAccounts(ctx, orgID, accountIDs)
	if err != nil {
		return nil, err
	}

	balanceChanges, err := calculateBalanceChanges(entries, accountsMap)
	if err != nil {
		s.LogError(ctx, err, "Failed to calculate balance changes", "document_id", documentID)
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		OrgID:         orgID,
		Date:          req.Date,
		Description:   fmt.Sprintf("%s %s", docType, req.DocNumber),
		CurrencyCode:  controlAccount.CurrencyCode,
		Status:        domain.Posted,
		Source: domain.DocumentRef{
			DocumentType: docType,
			DocumentID:   documentID,
		},
		AuditFields: audit,
	}

	doc := domain.Document{
		DocumentID:           documentID,
		OrgID:                orgID,
		DocumentType:         docType,
		PartyID:              req.PartyID,
		DocNumber:            req.DocNumber,
		Date:                 req.Date,
		DueDate:              req.DueDate,
		CurrencyCode:         controlAccount.CurrencyCode,
		Total:                req.Total,
		DueBalance:           req.Total,
		Status:               domain.DocStatusPending,
		PostingTransactionID: transactionID,
		AuditFields:          audit,
	}

	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.documentRepo.Rollback(ctx, tx)
	}()

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post opening transaction", "document_id", documentID)
		return nil, fmt.Errorf("failed to post opening transaction: %w", err)
	}
	if err := s.documentRepo.SaveDocumentInTx(ctx, tx, doc, items); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save document", "document_id", documentID)
		}
		return nil, err
	}

	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document created", "document_id", documentID, "document_type", string(docType), "doc_number", req.DocNumber)
	doc.Items = items
	return &doc, nil
}

// resolveControlAccount maps a document type to the org's receivable or
// payable control account.
func (s *documentService) resolveControlAccount(ctx context.Context, orgID string, docType domain.DocumentType) (*domain.Account, error) {
	role := domain.RoleAccountsReceivable
	if docType == domain.DocBill {
		role = domain.RoleAccountsPayable
	}
	return s.resolveRoleAccount(ctx, orgID, role)
}

func (s *documentService) resolveRoleAccount(ctx context.Context, orgID string, role domain.SystemRole) (*domain.Account, error) {
	config, err := s.accountRepo.FindConfiguration(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account configuration", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch account configuration: %w", err)
	}
	accountID, ok := config.AccountFor(role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotConfigured, role)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch role account", "role", string(role), "account_id", accountID)
		return nil, fmt.Errorf("failed to fetch %s account: %w", role, err)
	}
	return account, nil
}

// fetchActiveAccounts loads accounts by ID and verifies org ownership and
// active status.
func (s *documentService) fetchActiveAccounts(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	unique := uniqueStrings(accountIDs)
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, unique)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range unique {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if acc.OrgID != orgID {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return accountsMap, nil
}

// GetDocumentByID retrieves a document with its items.
func (s *documentService) GetDocumentByID(ctx context.Context, orgID string, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document by ID", "document_id", documentID)
		}
		return nil, err
	}

	if doc.OrgID != orgID {
		// Obscure existence of documents from other orgs.
		return nil, apperrors.ErrNotFound
	}

	items, err := s.documentRepo.FindItemsByDocumentID(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch items for document", "document_id", documentID)
		return nil, fmt.Errorf("failed to retrieve items for document %s: %w", documentID, apperrors.ErrInternal)
	}
	doc.Items = items

	return doc, nil
}

// ListDocuments retrieves a paginated list of documents of one type.
func (s *documentService) ListDocuments(ctx context.Context, orgID string, docType domain.DocumentType, params dto.ListDocumentsParams) ([]domain.Document, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	docs, token, err := s.documentRepo.ListDocuments(ctx, orgID, docType, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", "org_id", orgID, "document_type", string(docType))
		return nil, nil, fmt.Errorf("failed to retrieve documents: %w", err)
	}

	return docs, token, nil
}

// VoidDocument voids an unpaid document. The opening transaction is reversed
// so its ledger effect nets to zero, and the document stops accepting
// payments. Documents with any settlement applied cannot be voided.
func (s *documentService) VoidDocument(ctx context.Context, orgID string, documentID string, userID string) (*domain.Document, error) {
	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.documentRepo.Rollback(ctx, tx)
	}()

	doc, err := s.documentRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock document for void", "document_id", documentID)
		}
		return nil, err
	}
	if doc.OrgID != orgID {
		return nil, apperrors.ErrNotFound
	}

	if doc.IsVoided {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrAlreadyVoided.Error())
	}
	if doc.AmountPaid().IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrCannotVoidSettledDocument.Error())
	}

	original, err := s.ledgerRepo.FindTransactionByID(ctx, doc.PostingTransactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch opening transaction for void", "document_id", documentID)
		return nil, fmt.Errorf("failed to fetch opening transaction: %w", err)
	}
	originalEntries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, doc.PostingTransactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch opening entries for void", "document_id", documentID)
		return nil, fmt.Errorf("failed to fetch opening entries: %w", err)
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

	// Void may touch accounts that were deactivated after posting; the
	// reversal still has to go through, so only existence is checked here.
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for void reversal", "document_id", documentID)
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
		Description:           fmt.Sprintf("Void of %s %s", doc.DocumentType, doc.DocNumber),
		CurrencyCode:          original.CurrencyCode,
		Status:                domain.Posted,
		Source:                original.Source,
		OriginalTransactionID: original.TransactionID,
		AuditFields:           audit,
	}

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, reversing, reversingEntries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post void reversal", "document_id", documentID)
		return nil, fmt.Errorf("failed to post void reversal: %w", err)
	}
	if err := s.ledgerRepo.UpdateTransactionStatusAndLinks(ctx, tx, original.TransactionID, domain.Reversed, &reversingID, nil, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark opening transaction reversed", "document_id", documentID)
		return nil, fmt.Errorf("failed to update opening transaction: %w", err)
	}

	doc.IsVoided = true
	doc.VoidedAt = &now
	doc.VoidedBy = userID
	doc.Status = domain.DocStatusVoided
	doc.DueBalance = decimal.Zero
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID

	if err := s.documentRepo.MarkDocumentVoidedInTx(ctx, tx, *doc); err != nil {
		s.LogError(ctx, err, "Failed to mark document voided", "document_id", documentID)
		return nil, err
	}

	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document voided", "document_id", documentID, "reversing_transaction_id", reversingID)
	return doc, nil
}
