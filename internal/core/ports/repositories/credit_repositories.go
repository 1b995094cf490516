package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditReader defines read operations for credit memos and vendor credits
type CreditReader interface {
	// FindCreditByID retrieves a specific credit by its unique identifier.
	FindCreditByID(ctx context.Context, creditID string) (*domain.CreditMemo, error)

	// FindLinesByCreditID retrieves the lines of an ITEM_BASED credit.
	FindLinesByCreditID(ctx context.Context, creditID string) ([]domain.CreditLine, error)

	// ListCreditsByParty retrieves the credits of one party, newest first.
	ListCreditsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.CreditMemo, *string, error)

	// FindApplicationsByCreditID retrieves the application history of a credit.
	FindApplicationsByCreditID(ctx context.Context, creditID string) ([]domain.CreditApplication, error)

	// FindRefundsByCreditID retrieves the refunds issued against a credit.
	FindRefundsByCreditID(ctx context.Context, creditID string) ([]domain.Refund, error)
}

// CreditWriter defines write operations for credit memos and vendor credits
type CreditWriter interface {
	// SaveCreditInTx persists a new credit and its lines within a caller-owned transaction.
	SaveCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.CreditMemo, lines []domain.CreditLine) error

	// FindCreditByIDForUpdate selects a credit and locks its row within a transaction.
	FindCreditByIDForUpdate(ctx context.Context, tx pgx.Tx, creditID string) (*domain.CreditMemo, error)

	// UpdateCreditBalanceInTx writes a new remaining balance and status for a locked credit.
	UpdateCreditBalanceInTx(ctx context.Context, tx pgx.Tx, creditID string, remaining decimal.Decimal, status domain.CreditStatus, userID string) error

	// SaveApplicationInTx persists an immutable credit application within a caller-owned transaction.
	SaveApplicationInTx(ctx context.Context, tx pgx.Tx, application domain.CreditApplication) error

	// SaveRefundInTx persists an immutable refund row within a caller-owned transaction.
	SaveRefundInTx(ctx context.Context, tx pgx.Tx, refund domain.Refund) error
}

// CreditRepositoryFacade combines all credit-related repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
	TransactionManager
}
