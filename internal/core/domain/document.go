package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the stored lifecycle state of an invoice or bill.
// OVERDUE is intentionally absent: it is a display state derived at read time.
type DocumentStatus string

const (
	DocStatusPending DocumentStatus = "PENDING"
	DocStatusPartial DocumentStatus = "PARTIAL"
	DocStatusPaid    DocumentStatus = "PAID"
	DocStatusVoided  DocumentStatus = "VOIDED"
)

// DocumentItem is a single line on an invoice or bill.
type DocumentItem struct {
	ItemID     string          `json:"itemID"`
	DocumentID string          `json:"documentID"`
	ProductID  string          `json:"productID"` // Nullable free-form reference
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	AccountID  string          `json:"accountID"` // Revenue account (invoice) or expense account (bill)
	LineTotal  decimal.Decimal `json:"lineTotal"` // quantity * unitPrice, rounded to 2dp
}

// Document represents a receivable (invoice) or payable (bill). The two share
// the same lifecycle and due-balance arithmetic and differ only in which side
// of the books their posting hits.
type Document struct {
	DocumentID   string         `json:"documentID"` // Primary Key (e.g., UUID)
	OrgID        string         `json:"orgID"`
	DocumentType DocumentType   `json:"documentType"` // INVOICE or BILL
	PartyID      string         `json:"partyID"`      // Customer (invoice) or vendor (bill)
	DocNumber    string         `json:"docNumber"`    // Human-facing number, unique per org
	Date         time.Time      `json:"date"`
	DueDate      time.Time      `json:"dueDate"`
	CurrencyCode string         `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"`      // Fixed at creation
	DueBalance   decimal.Decimal `json:"dueBalance"` // Starts at Total; only decreases, except via void
	Status       DocumentStatus  `json:"status"`
	IsVoided     bool            `json:"isVoided"`
	VoidedAt     *time.Time      `json:"voidedAt,omitempty"`
	VoidedBy     string          `json:"voidedBy,omitempty"`

	// PostingTransactionID is the opening transaction created with the document.
	PostingTransactionID string `json:"postingTransactionID"`

	Items []DocumentItem `json:"items,omitempty"`
	AuditFields
}

// AmountPaid returns how much of the document total has been settled so far.
func (d Document) AmountPaid() decimal.Decimal {
	return d.Total.Sub(d.DueBalance)
}

// IsOverdue reports the derived display state: the due date has passed and a
// positive balance is still outstanding.
func (d Document) IsOverdue(now time.Time) bool {
	if d.IsVoided || d.Status == DocStatusPaid {
		return false
	}
	return now.After(d.DueDate) && d.DueBalance.IsPositive()
}

// PaymentMethod describes how a cash payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCard         PaymentMethod = "CARD"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodOther        PaymentMethod = "OTHER"
)

// Payment is an immutable record of cash applied to a document. Prepayment and
// credit applications are recorded separately; a Payment row exists only when
// new cash moved.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	OrgID            string          `json:"orgID"`
	DocumentID       string          `json:"documentID"`
	Amount           decimal.Decimal `json:"amount"` // Strictly positive
	PaymentAccountID string          `json:"paymentAccountID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Method           PaymentMethod   `json:"method"`
	TransactionID    string          `json:"transactionID"` // Cash movement posted for this payment
	AuditFields
}
