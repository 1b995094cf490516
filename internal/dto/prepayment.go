package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePrepaymentRequest defines the data needed to record money received or
// paid ahead of any document.
type CreatePrepaymentRequest struct {
	Kind             domain.PartyKind `json:"kind" validate:"required,oneof=CUSTOMER VENDOR"`
	PartyID          string           `json:"partyID" validate:"required"`
	Amount           decimal.Decimal  `json:"amount" validate:"required"`
	DepositAccountID string           `json:"depositAccountID" validate:"required"`
	Date             time.Time        `json:"date" validate:"required"`
	Description      string           `json:"description"`
}

// PrepaymentResponse defines the data returned for a prepayment.
type PrepaymentResponse struct {
	PrepaymentID     string                  `json:"prepaymentID"`
	Kind             domain.PartyKind        `json:"kind"`
	PartyID          string                  `json:"partyID"`
	Amount           decimal.Decimal         `json:"amount"`
	RemainingBalance decimal.Decimal         `json:"remainingBalance"`
	Status           domain.PrepaymentStatus `json:"status"`
	DepositAccountID string                  `json:"depositAccountID"`
	Date             time.Time               `json:"date"`
	Description      string                  `json:"description,omitempty"`
	TransactionID    string                  `json:"transactionID"`
}

// ToPrepaymentResponse converts a domain.Prepayment to PrepaymentResponse DTO
func ToPrepaymentResponse(p *domain.Prepayment) PrepaymentResponse {
	return PrepaymentResponse{
		PrepaymentID:     p.PrepaymentID,
		Kind:             p.Kind,
		PartyID:          p.PartyID,
		Amount:           p.Amount,
		RemainingBalance: p.RemainingBalance,
		Status:           p.Status,
		DepositAccountID: p.DepositAccountID,
		Date:             p.Date,
		Description:      p.Description,
		TransactionID:    p.TransactionID,
	}
}
