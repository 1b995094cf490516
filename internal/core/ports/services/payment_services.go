package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
)

// PaymentSvc is the payment application engine: the single coordinator that
// settles a document from cash, prepayment balance and credit balance in one
// atomic operation.
type PaymentSvc interface {
	// RecordPayment applies cash plus optional prepayment and credit portions
	// to one document. The whole application succeeds or fails together.
	RecordPayment(ctx context.Context, orgID string, req dto.RecordPaymentRequest, userID string) (*dto.PaymentResult, error)

	// GetPaymentsByDocument retrieves the cash payments recorded against a document.
	GetPaymentsByDocument(ctx context.Context, orgID string, documentID string) ([]domain.Payment, error)
}
