package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentReader defines read operations for invoices and bills
type DocumentReader interface {
	// FindDocumentByID retrieves a specific document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindItemsByDocumentID retrieves the line items of a document.
	FindItemsByDocumentID(ctx context.Context, documentID string) ([]domain.DocumentItem, error)

	// ListDocuments retrieves a paginated list of documents of one type for an org.
	ListDocuments(ctx context.Context, orgID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for invoices and bills
type DocumentWriter interface {
	// SaveDocumentInTx persists a document and its items within a caller-owned transaction.
	SaveDocumentInTx(ctx context.Context, tx pgx.Tx, doc domain.Document, items []domain.DocumentItem) error

	// FindDocumentByIDForUpdate selects a document and locks its row within a transaction.
	FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error)

	// UpdateDocumentSettlementInTx writes a new due balance and status for a locked document.
	UpdateDocumentSettlementInTx(ctx context.Context, tx pgx.Tx, documentID string, dueBalance decimal.Decimal, status domain.DocumentStatus, userID string) error

	// MarkDocumentVoidedInTx flags a document voided and restores its due balance to zero consumption.
	MarkDocumentVoidedInTx(ctx context.Context, tx pgx.Tx, doc domain.Document) error
}

// PaymentWriter defines write operations for payment records
type PaymentWriter interface {
	// SavePaymentInTx persists an immutable payment row within a caller-owned transaction.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// PaymentReader defines read operations for payment records
type PaymentReader interface {
	// FindPaymentsByDocumentID retrieves all payments recorded against a document.
	FindPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error)
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
	PaymentReader
	PaymentWriter
	TransactionManager
}
