package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PrepaymentReader defines read operations for prepayments
type PrepaymentReader interface {
	// FindPrepaymentByID retrieves a specific prepayment by its unique identifier.
	FindPrepaymentByID(ctx context.Context, prepaymentID string) (*domain.Prepayment, error)

	// ListPrepaymentsByParty retrieves the prepayments of one party, newest first.
	ListPrepaymentsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.Prepayment, *string, error)

	// FindApplicationsByPrepaymentID retrieves the application history of a prepayment.
	FindApplicationsByPrepaymentID(ctx context.Context, prepaymentID string) ([]domain.PrepaymentApplication, error)
}

// PrepaymentWriter defines write operations for prepayments
type PrepaymentWriter interface {
	// SavePrepaymentInTx persists a new prepayment within a caller-owned transaction.
	SavePrepaymentInTx(ctx context.Context, tx pgx.Tx, prepayment domain.Prepayment) error

	// FindPrepaymentByIDForUpdate selects a prepayment and locks its row within a transaction.
	FindPrepaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, prepaymentID string) (*domain.Prepayment, error)

	// UpdatePrepaymentBalanceInTx writes a new remaining balance and derived status for a locked prepayment.
	UpdatePrepaymentBalanceInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, remaining decimal.Decimal, status domain.PrepaymentStatus, userID string) error

	// SaveApplicationInTx persists an immutable prepayment application within a caller-owned transaction.
	SaveApplicationInTx(ctx context.Context, tx pgx.Tx, application domain.PrepaymentApplication) error
}

// PrepaymentRepositoryFacade combines all prepayment-related repository interfaces
type PrepaymentRepositoryFacade interface {
	PrepaymentReader
	PrepaymentWriter
	TransactionManager
}
