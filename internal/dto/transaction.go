package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one line of a transaction to post.
type CreateEntryRequest struct {
	AccountID string           `json:"accountID" validate:"required"`
	Amount    decimal.Decimal  `json:"amount" validate:"required"`
	EntryType domain.EntryType `json:"entryType" validate:"required,oneof=DEBIT CREDIT"`
	Notes     string           `json:"notes"`
}

// PostTransactionRequest defines the data needed to post a balanced transaction.
type PostTransactionRequest struct {
	Date        time.Time            `json:"date" validate:"required"`
	Description string               `json:"description"`
	Entries     []CreateEntryRequest `json:"entries" validate:"required,min=2,dive"`

	// Optional source-document link; both fields set or both empty.
	SourceDocumentType domain.DocumentType `json:"sourceDocumentType" validate:"omitempty,oneof=INVOICE BILL RECEIPT PREPAYMENT CREDIT_MEMO VENDOR_CREDIT REFUND"`
	SourceDocumentID   string              `json:"sourceDocumentID"`
}

// TransactionResponse defines the data returned for a transaction with its entries.
type TransactionResponse struct {
	TransactionID          string                   `json:"transactionID"`
	Date                   time.Time                `json:"date"`
	Description            string                   `json:"description"`
	CurrencyCode           string                   `json:"currencyCode"`
	Status                 domain.TransactionStatus `json:"status"`
	OriginalTransactionID  string                   `json:"originalTransactionID,omitempty"`
	ReversingTransactionID string                   `json:"reversingTransactionID,omitempty"`
	Entries                []EntryResponse          `json:"entries"`
}

// EntryResponse mirrors domain.Entry for responses.
type EntryResponse struct {
	EntryID   string           `json:"entryID"`
	AccountID string           `json:"accountID"`
	Amount    decimal.Decimal  `json:"amount"`
	EntryType domain.EntryType `json:"entryType"`
	Notes     string           `json:"notes,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = EntryResponse{
			EntryID:   e.EntryID,
			AccountID: e.AccountID,
			Amount:    e.Amount,
			EntryType: e.EntryType,
			Notes:     e.Notes,
		}
	}
	return TransactionResponse{
		TransactionID:          txn.TransactionID,
		Date:                   txn.Date,
		Description:            txn.Description,
		CurrencyCode:           txn.CurrencyCode,
		Status:                 txn.Status,
		OriginalTransactionID:  txn.OriginalTransactionID,
		ReversingTransactionID: txn.ReversingTransactionID,
		Entries:                entries,
	}
}
