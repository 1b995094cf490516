package mapping

import (
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:           d.DocumentID,
		OrgID:                d.OrgID,
		DocumentType:         string(d.DocumentType),
		PartyID:              d.PartyID,
		DocNumber:            d.DocNumber,
		Date:                 d.Date,
		DueDate:              d.DueDate,
		CurrencyCode:         d.CurrencyCode,
		Total:                d.Total,
		DueBalance:           d.DueBalance,
		Status:               models.DocumentStatus(d.Status),
		IsVoided:             d.IsVoided,
		VoidedAt:             d.VoidedAt,
		VoidedBy:             d.VoidedBy,
		PostingTransactionID: d.PostingTransactionID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:           m.DocumentID,
		OrgID:                m.OrgID,
		DocumentType:         domain.DocumentType(m.DocumentType),
		PartyID:              m.PartyID,
		DocNumber:            m.DocNumber,
		Date:                 m.Date,
		DueDate:              m.DueDate,
		CurrencyCode:         m.CurrencyCode,
		Total:                m.Total,
		DueBalance:           m.DueBalance,
		Status:               domain.DocumentStatus(m.Status),
		IsVoided:             m.IsVoided,
		VoidedAt:             m.VoidedAt,
		VoidedBy:             m.VoidedBy,
		PostingTransactionID: m.PostingTransactionID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

// ToModelDocumentItem converts a domain DocumentItem to a model DocumentItem
func ToModelDocumentItem(d domain.DocumentItem) models.DocumentItem {
	return models.DocumentItem{
		ItemID:     d.ItemID,
		DocumentID: d.DocumentID,
		ProductID:  d.ProductID,
		Name:       d.Name,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		AccountID:  d.AccountID,
		LineTotal:  d.LineTotal,
	}
}

// ToDomainDocumentItem converts a model DocumentItem to a domain DocumentItem
func ToDomainDocumentItem(m models.DocumentItem) domain.DocumentItem {
	return domain.DocumentItem{
		ItemID:     m.ItemID,
		DocumentID: m.DocumentID,
		ProductID:  m.ProductID,
		Name:       m.Name,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		AccountID:  m.AccountID,
		LineTotal:  m.LineTotal,
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		OrgID:            d.OrgID,
		DocumentID:       d.DocumentID,
		Amount:           d.Amount,
		PaymentAccountID: d.PaymentAccountID,
		PaymentDate:      d.PaymentDate,
		Method:           string(d.Method),
		TransactionID:    d.TransactionID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		OrgID:            m.OrgID,
		DocumentID:       m.DocumentID,
		Amount:           m.Amount,
		PaymentAccountID: m.PaymentAccountID,
		PaymentDate:      m.PaymentDate,
		Method:           domain.PaymentMethod(m.Method),
		TransactionID:    m.TransactionID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
