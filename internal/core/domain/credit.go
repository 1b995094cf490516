package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditType distinguishes credits priced from lines vs a single amount.
type CreditType string

const (
	CreditItemBased CreditType = "ITEM_BASED"
	CreditGeneral   CreditType = "GENERAL"
)

// CreditStatus is the lifecycle state of a credit memo or vendor credit.
// CLOSED is derived (remaining balance hit zero); VOIDED is always explicit.
type CreditStatus string

const (
	CreditOpen   CreditStatus = "OPEN"
	CreditClosed CreditStatus = "CLOSED"
	CreditVoided CreditStatus = "VOIDED"
)

// CreditLine is a single line on an ITEM_BASED credit.
type CreditLine struct {
	LineID    string          `json:"lineID"`
	CreditID  string          `json:"creditID"`
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AccountID string          `json:"accountID"` // Revenue (customer) or expense (vendor) account being reduced
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CreditMemo is a customer credit memo or a vendor credit, depending on Kind.
// Its remaining balance is consumed by applications and refunds; the original
// total never changes.
type CreditMemo struct {
	CreditID         string          `json:"creditID"`
	OrgID            string          `json:"orgID"`
	Kind             PartyKind       `json:"kind"`
	CreditType       CreditType      `json:"creditType"`
	PartyID          string          `json:"partyID"`
	DocNumber        string          `json:"docNumber"`
	Date             time.Time       `json:"date"`
	CurrencyCode     string          `json:"currencyCode"`
	Total            decimal.Decimal `json:"total"` // Fixed at creation
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Status           CreditStatus    `json:"status"`
	Reason           string          `json:"reason"`

	// RelatedDocument optionally points at the invoice, receipt or bill that
	// prompted the credit. Informational; applications carry the real links.
	RelatedDocument DocumentRef `json:"relatedDocument,omitempty"`

	// CreditAccountID is set for GENERAL credits in place of lines.
	CreditAccountID string `json:"creditAccountID,omitempty"`

	TransactionID string       `json:"transactionID"` // Posting at issue time
	Lines         []CreditLine `json:"lines,omitempty"`
	AuditFields
}

// DeriveStatus computes the OPEN/CLOSED state implied by the remaining balance.
// Voided credits keep their explicit status.
func (c CreditMemo) DeriveStatus() CreditStatus {
	if c.Status == CreditVoided {
		return CreditVoided
	}
	if c.RemainingBalance.IsZero() {
		return CreditClosed
	}
	return CreditOpen
}

// CreditApplication is an immutable record of part of a credit being applied
// to a document's due balance.
type CreditApplication struct {
	ApplicationID string          `json:"applicationID"`
	CreditID      string          `json:"creditID"`
	DocumentID    string          `json:"documentID"`
	AmountApplied decimal.Decimal `json:"amountApplied"` // Strictly positive
	TransactionID string          `json:"transactionID"`
	AuditFields
}

// Refund is an immutable record of cash paid out (customer credit) or received
// back (vendor credit) against a credit's remaining balance.
type Refund struct {
	RefundID        string          `json:"refundID"`
	OrgID           string          `json:"orgID"`
	CreditID        string          `json:"creditID"`
	RefundAmount    decimal.Decimal `json:"refundAmount"` // Strictly positive
	RefundAccountID string          `json:"refundAccountID"`
	RefundDate      time.Time       `json:"refundDate"`
	Method          PaymentMethod   `json:"method"`
	TransactionID   string          `json:"transactionID"`
	AuditFields
}
