package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PrepaymentReaderSvc defines read operations for prepayments
type PrepaymentReaderSvc interface {
	// GetPrepaymentByID retrieves a specific prepayment.
	GetPrepaymentByID(ctx context.Context, orgID string, prepaymentID string) (*domain.Prepayment, error)

	// ListPrepaymentsByParty retrieves the prepayments of one party.
	ListPrepaymentsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.Prepayment, *string, error)

	// GetApplications retrieves the application history of a prepayment.
	GetApplications(ctx context.Context, orgID string, prepaymentID string) ([]domain.PrepaymentApplication, error)
}

// PrepaymentWriterSvc defines write operations for prepayments
type PrepaymentWriterSvc interface {
	// CreatePrepayment persists a new prepayment and posts its cash movement.
	CreatePrepayment(ctx context.Context, orgID string, req dto.CreatePrepaymentRequest, userID string) (*domain.Prepayment, error)

	// ApplyPrepayment applies part of a prepayment to a document through the
	// payment engine, with no new cash involved.
	ApplyPrepayment(ctx context.Context, orgID string, prepaymentID string, documentID string, amount decimal.Decimal, userID string) (*dto.PaymentResult, error)
}

// PrepaymentSvcFacade combines all prepayment-related service interfaces
type PrepaymentSvcFacade interface {
	PrepaymentReaderSvc
	PrepaymentWriterSvc
}
