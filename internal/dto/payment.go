package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PrepaymentPortion names a prepayment and how much of it to consume.
type PrepaymentPortion struct {
	PrepaymentID string          `json:"prepaymentID" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
}

// CreditPortion names a credit and how much of it to consume.
type CreditPortion struct {
	CreditID string          `json:"creditID" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
}

// RecordPaymentRequest defines a settlement against one document: new cash
// plus optional prepayment and credit portions, applied together atomically.
type RecordPaymentRequest struct {
	DocumentID       string               `json:"documentID" validate:"required"`
	CashAmount       decimal.Decimal      `json:"cashAmount"` // Zero when settling purely from prepayment/credit
	PaymentAccountID string               `json:"paymentAccountID"`
	PaymentDate      time.Time            `json:"paymentDate" validate:"required"`
	Method           domain.PaymentMethod `json:"method" validate:"omitempty,oneof=CASH BANK_TRANSFER CARD CHEQUE OTHER"`
	Prepayment       *PrepaymentPortion   `json:"prepayment,omitempty"`
	Credit           *CreditPortion       `json:"credit,omitempty"`
}

// PaymentResult reports what a settlement did.
type PaymentResult struct {
	PaymentID         string                `json:"paymentID,omitempty"` // Empty when no cash moved
	DocumentID        string                `json:"documentID"`
	TotalApplied      decimal.Decimal       `json:"totalApplied"`
	CashApplied       decimal.Decimal       `json:"cashApplied"`
	PrepaymentApplied decimal.Decimal       `json:"prepaymentApplied"`
	CreditApplied     decimal.Decimal       `json:"creditApplied"`
	NewDueBalance     decimal.Decimal       `json:"newDueBalance"`
	NewStatus         domain.DocumentStatus `json:"newStatus"`
	TransactionIDs    []string              `json:"transactionIDs"`
}
