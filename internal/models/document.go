package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the stored lifecycle state of an invoice or bill.
type DocumentStatus string

const (
	DocPending DocumentStatus = "PENDING"
	DocPartial DocumentStatus = "PARTIAL"
	DocPaid    DocumentStatus = "PAID"
	DocVoided  DocumentStatus = "VOIDED"
)

// Document represents an invoice or bill row; document_type discriminates.
type Document struct {
	DocumentID   string          `db:"document_id"`
	OrgID        string          `db:"org_id"`
	DocumentType string          `db:"document_type"` // INVOICE or BILL
	PartyID      string          `db:"party_id"`
	DocNumber    string          `db:"doc_number"`
	Date         time.Time       `db:"date"`
	DueDate      time.Time       `db:"due_date"`
	CurrencyCode string          `db:"currency_code"`
	Total        decimal.Decimal `db:"total"`
	DueBalance   decimal.Decimal `db:"due_balance"`
	Status       DocumentStatus  `db:"status"`
	IsVoided     bool            `db:"is_voided"`
	VoidedAt     *time.Time      `db:"voided_at"` // Nullable
	VoidedBy     string          `db:"voided_by"` // Nullable

	PostingTransactionID string `db:"posting_transaction_id"`
	AuditFields
}

// DocumentItem is a single line on an invoice or bill.
type DocumentItem struct {
	ItemID     string          `db:"item_id"`
	DocumentID string          `db:"document_id"`
	ProductID  string          `db:"product_id"` // Nullable free-form reference
	Name       string          `db:"name"`
	Quantity   decimal.Decimal `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	AccountID  string          `db:"account_id"`
	LineTotal  decimal.Decimal `db:"line_total"`
}

// Payment is an immutable record of cash applied to a document.
type Payment struct {
	PaymentID        string          `db:"payment_id"`
	OrgID            string          `db:"org_id"`
	DocumentID       string          `db:"document_id"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentAccountID string          `db:"payment_account_id"`
	PaymentDate      time.Time       `db:"payment_date"`
	Method           string          `db:"method"`
	TransactionID    string          `db:"transaction_id"`
	AuditFields
}
