package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditLineRequest is one line of an ITEM_BASED credit.
type CreateCreditLineRequest struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
	AccountID string          `json:"accountID" validate:"required"`
}

// IssueCreditRequest defines the data needed to issue a credit memo (customer)
// or vendor credit. ITEM_BASED credits carry lines whose exact sum must equal
// Total; GENERAL credits carry a single credit account instead.
type IssueCreditRequest struct {
	Kind       domain.PartyKind  `json:"kind" validate:"required,oneof=CUSTOMER VENDOR"`
	CreditType domain.CreditType `json:"creditType" validate:"required,oneof=ITEM_BASED GENERAL"`
	PartyID    string            `json:"partyID" validate:"required"`
	DocNumber  string            `json:"docNumber" validate:"required"`
	Date       time.Time         `json:"date" validate:"required"`
	Total      decimal.Decimal   `json:"total" validate:"required"`
	Reason     string            `json:"reason"`

	Lines           []CreateCreditLineRequest `json:"lines" validate:"omitempty,dive"`
	CreditAccountID string                    `json:"creditAccountID"` // GENERAL credits only

	// Optional pointer at the document that prompted the credit.
	RelatedDocumentType domain.DocumentType `json:"relatedDocumentType" validate:"omitempty,oneof=INVOICE RECEIPT BILL"`
	RelatedDocumentID   string              `json:"relatedDocumentID"`
}

// ApplyCreditRequest applies part of a credit to a document's due balance.
type ApplyCreditRequest struct {
	CreditID   string          `json:"creditID" validate:"required"`
	DocumentID string          `json:"documentID" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}

// IssueRefundRequest pays out (customer) or collects back (vendor) part of a
// credit's remaining balance in cash.
type IssueRefundRequest struct {
	CreditID        string               `json:"creditID" validate:"required"`
	Amount          decimal.Decimal      `json:"amount" validate:"required"`
	RefundAccountID string               `json:"refundAccountID" validate:"required"`
	RefundDate      time.Time            `json:"refundDate" validate:"required"`
	Method          domain.PaymentMethod `json:"method" validate:"omitempty,oneof=CASH BANK_TRANSFER CARD CHEQUE OTHER"`
}

// CreditResponse defines the data returned for a credit memo or vendor credit.
type CreditResponse struct {
	CreditID         string               `json:"creditID"`
	Kind             domain.PartyKind     `json:"kind"`
	CreditType       domain.CreditType    `json:"creditType"`
	PartyID          string               `json:"partyID"`
	DocNumber        string               `json:"docNumber"`
	Date             time.Time            `json:"date"`
	Total            decimal.Decimal      `json:"total"`
	RemainingBalance decimal.Decimal      `json:"remainingBalance"`
	Status           domain.CreditStatus  `json:"status"`
	Reason           string               `json:"reason,omitempty"`
	TransactionID    string               `json:"transactionID"`
	Lines            []CreditLineResponse `json:"lines,omitempty"`
}

// CreditLineResponse mirrors domain.CreditLine for responses.
type CreditLineResponse struct {
	LineID    string          `json:"lineID"`
	ProductID string          `json:"productID,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AccountID string          `json:"accountID"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// ToCreditResponse converts a domain.CreditMemo to CreditResponse DTO
func ToCreditResponse(c *domain.CreditMemo) CreditResponse {
	lines := make([]CreditLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CreditLineResponse{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			AccountID: l.AccountID,
			LineTotal: l.LineTotal,
		}
	}
	return CreditResponse{
		CreditID:         c.CreditID,
		Kind:             c.Kind,
		CreditType:       c.CreditType,
		PartyID:          c.PartyID,
		DocNumber:        c.DocNumber,
		Date:             c.Date,
		Total:            c.Total,
		RemainingBalance: c.RemainingBalance,
		Status:           c.Status,
		Reason:           c.Reason,
		TransactionID:    c.TransactionID,
		Lines:            lines,
	}
}
