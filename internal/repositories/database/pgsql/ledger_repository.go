package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	"github.com/openbooks/books_backend/internal/models"
	"github.com/openbooks/books_backend/internal/utils/accounting"
	"github.com/openbooks/books_backend/internal/utils/mapping"
	"github.com/openbooks/books_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for transaction and entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveTransaction posts a transaction with its entries inside a database
// transaction it opens itself.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	if err := r.SaveTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransactionInTx inserts the transaction row, locks and updates the
// affected account balances, and batch-inserts the entries with running
// balances, all inside the caller-owned database transaction.
func (r *PgxLedgerRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	now := txn.CreatedAt // Use consistent time from the transaction
	userID := txn.CreatedBy

	// 1. Insert the transaction row
	m := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO transactions (
			transaction_id, org_id, date, description, currency_code, status,
			source_document_type, source_document_id,
			original_transaction_id, reversing_transaction_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, txnQuery,
		m.TransactionID,
		m.OrgID,
		m.Date,
		m.Description,
		m.CurrencyCode,
		m.Status,
		nullString(m.SourceDocumentType),
		nullString(m.SourceDocumentID),
		nullString(m.OriginalTransactionID),
		nullString(m.ReversingTransactionID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	// 2. Lock affected accounts and read their balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Update cached account balances
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Insert entries with running balances
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO entries (entry_id, transaction_id, account_id, amount, entry_type, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance // Balance before this posting
	}

	// Sort by EntryID for deterministic running balance calculation
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryID < entries[j].EntryID
	})

	for _, entry := range entries {
		me := mapping.ToModelEntry(entry)
		me.CreatedAt = now
		me.LastUpdatedAt = now
		me.CreatedBy = userID
		me.LastUpdatedBy = userID

		lockedAccount, ok := lockedAccounts[entry.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: locked account "+entry.AccountID+" not found during entry processing", nil)
		}

		signedAmount, err := accounting.CalculateSignedAmount(entry, lockedAccount.Category)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for entry "+entry.EntryID, err)
		}

		newRunningBalance := currentRunningBalances[entry.AccountID].Add(signedAmount)
		me.RunningBalance = newRunningBalance
		currentRunningBalances[entry.AccountID] = newRunningBalance

		batch.Queue(entryQuery,
			me.EntryID,
			me.TransactionID,
			me.AccountID,
			me.Amount,
			me.EntryType,
			me.CurrencyCode,
			me.Notes,
			me.CreatedAt,
			me.CreatedBy,
			me.LastUpdatedAt,
			me.LastUpdatedBy,
			me.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for transaction "+m.TransactionID, err)
	}

	return nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var sourceType, sourceID, originalID, reversingID sql.NullString

	err := row.Scan(
		&m.TransactionID,
		&m.OrgID,
		&m.Date,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&sourceType,
		&sourceID,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.SourceDocumentType = sourceType.String
	m.SourceDocumentID = sourceID.String
	m.OriginalTransactionID = originalID.String
	m.ReversingTransactionID = reversingID.String
	return &m, nil
}

const transactionColumns = `transaction_id, org_id, date, description, currency_code, status, source_document_type, source_document_id, original_transaction_id, reversing_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// FindEntriesByTransactionID retrieves all entries associated with a specific transaction.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, amount, entry_type, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance
		FROM entries
		WHERE transaction_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.Amount,
			&e.EntryType,
			&e.CurrencyCode,
			&e.Notes,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.RunningBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

// ListTransactionsByOrg retrieves a paginated list of transactions for an org using token-based pagination.
func (r *PgxLedgerRepository) ListTransactionsByOrg(ctx context.Context, orgID string, limit int, nextToken *string, includeReversals bool) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions`

	filterClause := `WHERE org_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversing_transaction_id IS NULL AND original_transaction_id IS NULL`
	}

	// Stable ordering: date DESC with created_at as tie-breaker.
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{orgID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for org "+orgID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for org "+orgID, scanErr)
		}
		modelTxns = append(modelTxns, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for org "+orgID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		lastTxn := modelTxns[limit-1]
		newToken := pagination.EncodeToken(lastTxn.Date, lastTxn.CreatedAt)
		nextTokenVal = &newToken
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.Transaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainTransaction(m)
	}

	return domainTxns, nextTokenVal, nil
}

// ListEntriesByAccountID retrieves a paginated list of entries for a specific account.
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, orgID, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.amount, e.entry_type, e.currency_code, e.notes,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.running_balance, t.date
		FROM entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE e.account_id = $1 AND t.org_id = $2 AND t.status = 'POSTED' AND t.original_transaction_id IS NULL
	`
	orderByClause := `ORDER BY t.date DESC, e.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, orgID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (t.date, e.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	type entryWithDate struct {
		entry models.Entry
		date  time.Time
	}

	scanned := make([]entryWithDate, 0, fetchLimit)
	for rows.Next() {
		var e models.Entry
		var date time.Time
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.Amount,
			&e.EntryType,
			&e.CurrencyCode,
			&e.Notes,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.RunningBalance,
			&date,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, err)
		}
		scanned = append(scanned, entryWithDate{entry: e, date: date})
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	var results []models.Entry
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.date, last.entry.CreatedAt)
		nextTokenVal = &token
		results = make([]models.Entry, limit)
		for i := 0; i < limit; i++ {
			results[i] = scanned[i].entry
		}
	} else {
		results = make([]models.Entry, len(scanned))
		for i, s := range scanned {
			results[i] = s.entry
		}
	}

	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}

// UpdateTransactionStatusAndLinks updates the status and reversal links for a transaction.
func (r *PgxLedgerRepository) UpdateTransactionStatusAndLinks(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus, reversingTransactionID *string, originalTransactionID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2,
		    reversing_transaction_id = $3,
		    original_transaction_id = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE transaction_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query,
		transactionID,
		status,
		reversingTransactionID,
		originalTransactionID,
		updatedAt,
		updatedByUserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status and links for transaction "+transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
