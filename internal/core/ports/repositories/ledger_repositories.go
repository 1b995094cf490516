package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for posted transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves all entries associated with a single transaction ID.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)

	// ListTransactionsByOrg retrieves a paginated list of transactions for an org using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByOrg(ctx context.Context, orgID string, limit int, nextToken *string, includeReversals bool) ([]domain.Transaction, *string, error)

	// ListEntriesByAccountID retrieves a paginated list of entries for a specific account.
	ListEntriesByAccountID(ctx context.Context, orgID, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// TransactionWriter defines write operations for posted transactions
type TransactionWriter interface {
	// SaveTransaction persists a transaction and its entries, updating account
	// balances, all inside one database transaction it opens itself.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error

	// SaveTransactionInTx is SaveTransaction running inside a caller-owned
	// database transaction, for operations that persist more than a posting.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransactionStatusAndLinks updates the status and reversal linkage of a transaction.
	UpdateTransactionStatusAndLinks(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus, reversingTransactionID *string, originalTransactionID *string, updatedByUserID string, updatedAt time.Time) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionManager
}
