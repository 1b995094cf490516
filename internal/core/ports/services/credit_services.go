package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
)

// CreditReaderSvc defines read operations for credit memos and vendor credits
type CreditReaderSvc interface {
	// GetCreditByID retrieves a specific credit with its lines.
	GetCreditByID(ctx context.Context, orgID string, creditID string) (*domain.CreditMemo, error)

	// ListCreditsByParty retrieves the credits of one party.
	ListCreditsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.CreditMemo, *string, error)

	// GetApplications retrieves the application history of a credit.
	GetApplications(ctx context.Context, orgID string, creditID string) ([]domain.CreditApplication, error)

	// GetRefunds retrieves the refunds issued against a credit.
	GetRefunds(ctx context.Context, orgID string, creditID string) ([]domain.Refund, error)
}

// CreditWriterSvc defines write operations for credit memos and vendor credits
type CreditWriterSvc interface {
	// IssueCredit persists a new credit memo or vendor credit and posts its issue transaction.
	IssueCredit(ctx context.Context, orgID string, req dto.IssueCreditRequest, userID string) (*domain.CreditMemo, error)

	// ApplyCredit applies part of a credit to a document through the payment
	// engine, with no new cash involved.
	ApplyCredit(ctx context.Context, orgID string, req dto.ApplyCreditRequest, userID string) (*dto.PaymentResult, error)

	// IssueRefund pays out part of a credit's remaining balance in cash.
	IssueRefund(ctx context.Context, orgID string, req dto.IssueRefundRequest, userID string) (*domain.Refund, error)

	// VoidCredit voids an unapplied credit and posts the reversing transaction.
	VoidCredit(ctx context.Context, orgID string, creditID string, userID string) (*domain.CreditMemo, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
}
