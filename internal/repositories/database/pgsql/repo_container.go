package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs all PostgreSQL-backed repositories sharing one pool.
// The ledger repository depends on the account repository for balance updates
// inside posting transactions, so the account repository is built first.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)

	return &portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		LedgerRepo:     newPgxLedgerRepository(pool, accountRepo),
		DocumentRepo:   newPgxDocumentRepository(pool),
		PrepaymentRepo: newPgxPrepaymentRepository(pool),
		CreditRepo:     newPgxCreditRepository(pool),
		ReportingRepo:  newReportingRepository(pool),
	}
}
