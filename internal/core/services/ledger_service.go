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
	"github.com/openbooks/books_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrTransactionMinEntries  = errors.New("transaction must have at least two entries")
	ErrTransactionMinAccounts = errors.New("transaction must affect at least two different accounts")
	ErrAccountNotFound        = errors.New("account not found")
	ErrCurrencyMismatch       = errors.New("account currency does not match transaction currency")
	ErrPartialSourceLink      = errors.New("source document type and ID must be set together")
	ErrAlreadyReversed        = errors.New("transaction has already been reversed")
	ErrReversalOfReversal     = errors.New("cannot reverse a transaction that is itself a reversal")
)

// ledgerService provides core transaction posting and reversal operations.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostTransaction validates and persists a balanced transaction with its entries.
func (s *ledgerService) PostTransaction(ctx context.Context, orgID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if len(req.Entries) < 2 {
		return nil, ErrTransactionMinEntries
	}

	accountSet := make(map[string]bool)
	for _, entry := range req.Entries {
		accountSet[entry.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrTransactionMinAccounts
	}

	if (req.SourceDocumentType == "") != (req.SourceDocumentID == "") {
		return nil, fmt.Errorf("%w", ErrPartialSourceLink)
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	accountIDs := make([]string, 0, len(req.Entries))
	for _, entryReq := range req.Entries {
		accountIDs = append(accountIDs, entryReq.AccountID)
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for posting", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	currencyCode := ""
	categories := make(map[string]domain.AccountCategory, len(uniqueAccountIDs))
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if acc.OrgID != orgID {
			s.LogWarn(ctx, "Entry references account from another org", "account_id", id)
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if currencyCode == "" {
			currencyCode = acc.CurrencyCode
		} else if acc.CurrencyCode != currencyCode {
			return nil, fmt.Errorf("%w: account %s is in %s, transaction is in %s",
				ErrCurrencyMismatch, id, acc.CurrencyCode, currencyCode)
		}
		categories[id] = acc.Category
	}

	entries := make([]domain.Entry, len(req.Entries))
	for i, entryReq := range req.Entries {
		entries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     entryReq.AccountID,
			Amount:        entryReq.Amount,
			EntryType:     entryReq.EntryType,
			CurrencyCode:  currencyCode,
			Notes:         entryReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := accounting.ValidateEntriesBalance(entries, categories); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvariantViolation, err.Error())
	}

	balanceChanges, err := calculateBalanceChanges(entries, accountsMap)
	if err != nil {
		s.LogError(ctx, err, "Failed to calculate balance changes", "transaction_id", transactionID)
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		OrgID:         orgID,
		Date:          req.Date,
		Description:   req.Description,
		CurrencyCode:  currencyCode,
		Status:        domain.Posted,
		Source: domain.DocumentRef{
			DocumentType: req.SourceDocumentType,
			DocumentID:   req.SourceDocumentID,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted", "transaction_id", transactionID, "org_id", orgID)
	txn.Entries = entries
	return &txn, nil
}

// GetTransactionByID retrieves a specific transaction with its entries.
func (s *ledgerService) GetTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID", "transaction_id", transactionID)
		}
		return nil, err
	}

	if txn.OrgID != orgID {
		// Obscure existence of transactions from other orgs.
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entries for transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to retrieve entries for transaction %s: %w", transactionID, apperrors.ErrInternal)
	}
	txn.Entries = entries

	return txn, nil
}

// ListTransactions retrieves a paginated list of transactions in an org.
func (s *ledgerService) ListTransactions(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	transactions, token, err := s.ledgerRepo.ListTransactionsByOrg(ctx, orgID, limit, nextToken, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", "org_id", orgID)
		return nil, nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return transactions, token, nil
}

// ReverseTransaction creates a mirror-image transaction for an existing posted
// one and links the two, all inside one database transaction.
func (s *ledgerService) ReverseTransaction(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error) {
	original, err := s.GetTransactionByID(ctx, orgID, transactionID)
	if err != nil {
		return nil, err
	}

	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrAlreadyReversed.Error())
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStateGuard, ErrReversalOfReversal.Error())
	}

	reversing, reversingEntries, balanceChanges, err := s.buildReversal(ctx, original, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.ledgerRepo.Rollback(ctx, tx)
	}()

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, *reversing, reversingEntries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save reversing transaction", "original_transaction_id", transactionID)
		return nil, fmt.Errorf("failed to save reversing transaction: %w", err)
	}

	now := reversing.CreatedAt
	if err := s.ledgerRepo.UpdateTransactionStatusAndLinks(ctx, tx, original.TransactionID, domain.Reversed, &reversing.TransactionID, nil, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark original transaction reversed", "original_transaction_id", transactionID)
		return nil, fmt.Errorf("failed to update original transaction: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction reversed", "original_transaction_id", transactionID, "reversing_transaction_id", reversing.TransactionID)
	reversing.Entries = reversingEntries
	return reversing, nil
}

// buildReversal produces the mirror-image transaction of an original: same
// amounts and accounts, debits and credits swapped.
func (s *ledgerService) buildReversal(ctx context.Context, original *domain.Transaction, userID string) (*domain.Transaction, []domain.Entry, map[string]decimal.Decimal, error) {
	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversingEntries := make([]domain.Entry, len(original.Entries))
	accountIDs := make([]string, 0, len(original.Entries))
	for i, origEntry := range original.Entries {
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
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for reversal", "transaction_id", original.TransactionID)
		return nil, nil, nil, fmt.Errorf("failed to get account details for reversal: %w", err)
	}

	balanceChanges, err := calculateBalanceChanges(reversingEntries, accountsMap)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to calculate balance changes for reversal: %w", err)
	}

	reversing := &domain.Transaction{
		TransactionID:         reversingID,
		OrgID:                 original.OrgID,
		Date:                  original.Date,
		Description:           fmt.Sprintf("Reversal of: %s", original.Description),
		CurrencyCode:          original.CurrencyCode,
		Status:                domain.Posted,
		Source:                original.Source,
		OriginalTransactionID: original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	return reversing, reversingEntries, balanceChanges, nil
}
