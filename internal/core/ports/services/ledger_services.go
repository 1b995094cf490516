package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for posted transactions
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction with its entries.
	GetTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions in an org.
	ListTransactions(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriterSvc defines write operations for posted transactions
type LedgerWriterSvc interface {
	// PostTransaction validates and persists a balanced transaction with its entries.
	PostTransaction(ctx context.Context, orgID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// ReverseTransaction creates a reversing transaction for an existing one.
	ReverseTransaction(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
