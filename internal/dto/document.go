package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentItemRequest is one line of an invoice or bill.
type CreateDocumentItemRequest struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
	AccountID string          `json:"accountID" validate:"required"`
}

// CreateDocumentRequest defines the data needed to create an invoice or bill.
// The service validates that Total equals the exact sum of line totals.
type CreateDocumentRequest struct {
	PartyID   string                      `json:"partyID" validate:"required"`
	DocNumber string                      `json:"docNumber" validate:"required"`
	Date      time.Time                   `json:"date" validate:"required"`
	DueDate   time.Time                   `json:"dueDate" validate:"required"`
	Total     decimal.Decimal             `json:"total" validate:"required"`
	Items     []CreateDocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// DocumentResponse defines the data returned for an invoice or bill.
type DocumentResponse struct {
	DocumentID           string                `json:"documentID"`
	DocumentType         domain.DocumentType   `json:"documentType"`
	PartyID              string                `json:"partyID"`
	DocNumber            string                `json:"docNumber"`
	Date                 time.Time             `json:"date"`
	DueDate              time.Time             `json:"dueDate"`
	CurrencyCode         string                `json:"currencyCode"`
	Total                decimal.Decimal       `json:"total"`
	DueBalance           decimal.Decimal       `json:"dueBalance"`
	Status               domain.DocumentStatus `json:"status"`
	IsOverdue            bool                  `json:"isOverdue"` // Derived at read time, never stored
	IsVoided             bool                  `json:"isVoided"`
	VoidedAt             *time.Time            `json:"voidedAt,omitempty"`
	PostingTransactionID string                `json:"postingTransactionID"`
	Items                []DocumentItemResponse `json:"items,omitempty"`
}

// DocumentItemResponse mirrors domain.DocumentItem for responses.
type DocumentItemResponse struct {
	ItemID    string          `json:"itemID"`
	ProductID string          `json:"productID,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AccountID string          `json:"accountID"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(doc *domain.Document, now time.Time) DocumentResponse {
	items := make([]DocumentItemResponse, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = DocumentItemResponse{
			ItemID:    item.ItemID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			AccountID: item.AccountID,
			LineTotal: item.LineTotal,
		}
	}
	return DocumentResponse{
		DocumentID:           doc.DocumentID,
		DocumentType:         doc.DocumentType,
		PartyID:              doc.PartyID,
		DocNumber:            doc.DocNumber,
		Date:                 doc.Date,
		DueDate:              doc.DueDate,
		CurrencyCode:         doc.CurrencyCode,
		Total:                doc.Total,
		DueBalance:           doc.DueBalance,
		Status:               doc.Status,
		IsOverdue:            doc.IsOverdue(now),
		IsVoided:             doc.IsVoided,
		VoidedAt:             doc.VoidedAt,
		PostingTransactionID: doc.PostingTransactionID,
		Items:                items,
	}
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=200"`
	NextToken string `json:"nextToken"`
}
