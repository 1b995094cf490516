package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
)

// DocumentReaderSvc defines read operations for invoices and bills
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a document with its items.
	GetDocumentByID(ctx context.Context, orgID string, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a paginated list of documents of one type.
	ListDocuments(ctx context.Context, orgID string, docType domain.DocumentType, params dto.ListDocumentsParams) ([]domain.Document, *string, error)
}

// DocumentWriterSvc defines write operations for invoices and bills
type DocumentWriterSvc interface {
	// CreateInvoice persists a new invoice and posts its opening transaction.
	CreateInvoice(ctx context.Context, orgID string, req dto.CreateDocumentRequest, userID string) (*domain.Document, error)

	// CreateBill persists a new bill and posts its opening transaction.
	CreateBill(ctx context.Context, orgID string, req dto.CreateDocumentRequest, userID string) (*domain.Document, error)

	// VoidDocument voids an unpaid document and posts the reversing transaction.
	VoidDocument(ctx context.Context, orgID string, documentID string, userID string) (*domain.Document, error)
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
