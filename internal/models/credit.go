package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus is the lifecycle state of a credit memo or vendor credit.
type CreditStatus string

const (
	CreditOpen   CreditStatus = "OPEN"
	CreditClosed CreditStatus = "CLOSED"
	CreditVoided CreditStatus = "VOIDED"
)

// CreditMemo represents a customer credit memo or vendor credit row; kind discriminates.
type CreditMemo struct {
	CreditID         string          `db:"credit_id"`
	OrgID            string          `db:"org_id"`
	Kind             string          `db:"kind"`        // CUSTOMER or VENDOR
	CreditType       string          `db:"credit_type"` // ITEM_BASED or GENERAL
	PartyID          string          `db:"party_id"`
	DocNumber        string          `db:"doc_number"`
	Date             time.Time       `db:"date"`
	CurrencyCode     string          `db:"currency_code"`
	Total            decimal.Decimal `db:"total"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`
	Status           CreditStatus    `db:"status"`
	Reason           string          `db:"reason"`

	RelatedDocumentType string `db:"related_document_type"` // Nullable
	RelatedDocumentID   string `db:"related_document_id"`   // Nullable

	CreditAccountID string `db:"credit_account_id"` // Set for GENERAL credits
	TransactionID   string `db:"transaction_id"`
	AuditFields
}

// CreditLine is a single line on an ITEM_BASED credit.
type CreditLine struct {
	LineID    string          `db:"line_id"`
	CreditID  string          `db:"credit_id"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Quantity  decimal.Decimal `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	AccountID string          `db:"account_id"`
	LineTotal decimal.Decimal `db:"line_total"`
}

// CreditApplication records part of a credit applied to a document.
type CreditApplication struct {
	ApplicationID string          `db:"application_id"`
	CreditID      string          `db:"credit_id"`
	DocumentID    string          `db:"document_id"`
	AmountApplied decimal.Decimal `db:"amount_applied"`
	TransactionID string          `db:"transaction_id"`
	AuditFields
}

// Refund records cash moved against a credit's remaining balance.
type Refund struct {
	RefundID        string          `db:"refund_id"`
	OrgID           string          `db:"org_id"`
	CreditID        string          `db:"credit_id"`
	RefundAmount    decimal.Decimal `db:"refund_amount"`
	RefundAccountID string          `db:"refund_account_id"`
	RefundDate      time.Time       `db:"refund_date"`
	Method          string          `db:"method"`
	TransactionID   string          `db:"transaction_id"`
	AuditFields
}
