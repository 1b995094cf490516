package models

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

// Transaction represents a balanced financial event composed of multiple entries.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	OrgID         string            `db:"org_id"`
	Date          time.Time         `db:"date"`
	Description   string            `db:"description"`
	CurrencyCode  string            `db:"currency_code"`
	Status        TransactionStatus `db:"status"`

	// Source-document link; empty for manual journal entries.
	SourceDocumentType string `db:"source_document_type"`
	SourceDocumentID   string `db:"source_document_id"`

	OriginalTransactionID  string `db:"original_transaction_id"`  // Nullable
	ReversingTransactionID string `db:"reversing_transaction_id"` // Nullable
	AuditFields
}

// EntryType indicates whether an entry line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Entry represents a single line item within a Transaction, affecting one account.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"` // Positive value; precise decimal type
	EntryType     EntryType       `db:"entry_type"`
	CurrencyCode  string          `db:"currency_code"`
	Notes         string          `db:"notes"`
	AuditFields
	RunningBalance decimal.Decimal `db:"running_balance"` // Account balance after this entry
}
