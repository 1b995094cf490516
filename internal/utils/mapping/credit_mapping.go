package mapping

import (
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/models"
)

// ToModelCredit converts a domain CreditMemo to a model CreditMemo
func ToModelCredit(d domain.CreditMemo) models.CreditMemo {
	return models.CreditMemo{
		CreditID:            d.CreditID,
		OrgID:               d.OrgID,
		Kind:                string(d.Kind),
		CreditType:          string(d.CreditType),
		PartyID:             d.PartyID,
		DocNumber:           d.DocNumber,
		Date:                d.Date,
		CurrencyCode:        d.CurrencyCode,
		Total:               d.Total,
		RemainingBalance:    d.RemainingBalance,
		Status:              models.CreditStatus(d.Status),
		Reason:              d.Reason,
		RelatedDocumentType: string(d.RelatedDocument.DocumentType),
		RelatedDocumentID:   d.RelatedDocument.DocumentID,
		CreditAccountID:     d.CreditAccountID,
		TransactionID:       d.TransactionID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCredit converts a model CreditMemo to a domain CreditMemo
func ToDomainCredit(m models.CreditMemo) domain.CreditMemo {
	return domain.CreditMemo{
		CreditID:         m.CreditID,
		OrgID:            m.OrgID,
		Kind:             domain.PartyKind(m.Kind),
		CreditType:       domain.CreditType(m.CreditType),
		PartyID:          m.PartyID,
		DocNumber:        m.DocNumber,
		Date:             m.Date,
		CurrencyCode:     m.CurrencyCode,
		Total:            m.Total,
		RemainingBalance: m.RemainingBalance,
		Status:           domain.CreditStatus(m.Status),
		Reason:           m.Reason,
		RelatedDocument: domain.DocumentRef{
			DocumentType: domain.DocumentType(m.RelatedDocumentType),
			DocumentID:   m.RelatedDocumentID,
		},
		CreditAccountID: m.CreditAccountID,
		TransactionID:   m.TransactionID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditSlice converts a slice of model Credits to domain Credits
func ToDomainCreditSlice(ms []models.CreditMemo) []domain.CreditMemo {
	ds := make([]domain.CreditMemo, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCredit(m)
	}
	return ds
}

// ToModelCreditLine converts a domain CreditLine to a model CreditLine
func ToModelCreditLine(d domain.CreditLine) models.CreditLine {
	return models.CreditLine{
		LineID:    d.LineID,
		CreditID:  d.CreditID,
		ProductID: d.ProductID,
		Name:      d.Name,
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		AccountID: d.AccountID,
		LineTotal: d.LineTotal,
	}
}

// ToDomainCreditLine converts a model CreditLine to a domain CreditLine
func ToDomainCreditLine(m models.CreditLine) domain.CreditLine {
	return domain.CreditLine{
		LineID:    m.LineID,
		CreditID:  m.CreditID,
		ProductID: m.ProductID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		AccountID: m.AccountID,
		LineTotal: m.LineTotal,
	}
}

// ToModelCreditApplication converts a domain application to its model form
func ToModelCreditApplication(d domain.CreditApplication) models.CreditApplication {
	return models.CreditApplication{
		ApplicationID: d.ApplicationID,
		CreditID:      d.CreditID,
		DocumentID:    d.DocumentID,
		AmountApplied: d.AmountApplied,
		TransactionID: d.TransactionID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditApplication converts a model application to its domain form
func ToDomainCreditApplication(m models.CreditApplication) domain.CreditApplication {
	return domain.CreditApplication{
		ApplicationID: m.ApplicationID,
		CreditID:      m.CreditID,
		DocumentID:    m.DocumentID,
		AmountApplied: m.AmountApplied,
		TransactionID: m.TransactionID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRefund converts a domain Refund to a model Refund
func ToModelRefund(d domain.Refund) models.Refund {
	return models.Refund{
		RefundID:        d.RefundID,
		OrgID:           d.OrgID,
		CreditID:        d.CreditID,
		RefundAmount:    d.RefundAmount,
		RefundAccountID: d.RefundAccountID,
		RefundDate:      d.RefundDate,
		Method:          string(d.Method),
		TransactionID:   d.TransactionID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRefund converts a model Refund to a domain Refund
func ToDomainRefund(m models.Refund) domain.Refund {
	return domain.Refund{
		RefundID:        m.RefundID,
		OrgID:           m.OrgID,
		CreditID:        m.CreditID,
		RefundAmount:    m.RefundAmount,
		RefundAccountID: m.RefundAccountID,
		RefundDate:      m.RefundDate,
		Method:          domain.PaymentMethod(m.Method),
		TransactionID:   m.TransactionID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
