package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a posted transaction.
type TransactionStatus string

const (
	Posted   TransactionStatus = "POSTED"
	Reversed TransactionStatus = "REVERSED"
)

// DocumentType tags the kind of source document a transaction or link refers to.
type DocumentType string

const (
	DocInvoice      DocumentType = "INVOICE"
	DocBill         DocumentType = "BILL"
	DocReceipt      DocumentType = "RECEIPT"
	DocPrepayment   DocumentType = "PREPAYMENT"
	DocCreditMemo   DocumentType = "CREDIT_MEMO"
	DocVendorCredit DocumentType = "VENDOR_CREDIT"
	DocRefund       DocumentType = "REFUND"
)

// DocumentRef links a transaction back to the business document that caused it.
// A zero value means the transaction is a manual journal entry.
type DocumentRef struct {
	DocumentType DocumentType `json:"documentType"`
	DocumentID   string       `json:"documentID"`
}

// IsZero reports whether the ref points at nothing.
func (r DocumentRef) IsZero() bool {
	return r.DocumentType == "" && r.DocumentID == ""
}

// Transaction represents a single, balanced financial event composed of multiple entries.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (e.g., UUID)
	OrgID         string            `json:"orgID"`         // Owning organization (NON-NULL)
	Date          time.Time         `json:"date"`          // Date the event occurred
	Description   string            `json:"description"`   // Nullable user description
	CurrencyCode  string            `json:"currencyCode"`  // Currency of the books (Not Null)
	Status        TransactionStatus `json:"status"`        // Default: POSTED
	Source        DocumentRef       `json:"source"`        // Optional source-document link

	// Reversal links; set when a transaction reverses or is reversed by another.
	OriginalTransactionID  string `json:"originalTransactionID,omitempty"`
	ReversingTransactionID string `json:"reversingTransactionID,omitempty"`

	Entries []Entry `json:"entries,omitempty"` // Loaded with the transaction on reads that need them
	AuditFields
}

// IsReversal reports whether the transaction itself reverses another one.
func (t Transaction) IsReversal() bool {
	return t.OriginalTransactionID != ""
}

// EntryType indicates whether an entry line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Entry represents a single immutable line within a Transaction, affecting one account.
type Entry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (e.g., UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (Not Null)
	AccountID     string          `json:"accountID"`     // FK -> Account (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Strictly positive; precise decimal type
	EntryType     EntryType       `json:"entryType"`     // DEBIT or CREDIT (Not Null)
	CurrencyCode  string          `json:"currencyCode"`  // Must match the transaction currency
	Notes         string          `json:"notes"`         // Nullable
	AuditFields
}
