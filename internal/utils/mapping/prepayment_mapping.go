package mapping

import (
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/models"
)

// ToModelPrepayment converts a domain Prepayment to a model Prepayment
func ToModelPrepayment(d domain.Prepayment) models.Prepayment {
	return models.Prepayment{
		PrepaymentID:     d.PrepaymentID,
		OrgID:            d.OrgID,
		Kind:             string(d.Kind),
		PartyID:          d.PartyID,
		Amount:           d.Amount,
		RemainingBalance: d.RemainingBalance,
		Status:           string(d.Status),
		CurrencyCode:     d.CurrencyCode,
		DepositAccountID: d.DepositAccountID,
		Date:             d.Date,
		Description:      d.Description,
		TransactionID:    d.TransactionID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPrepayment converts a model Prepayment to a domain Prepayment
func ToDomainPrepayment(m models.Prepayment) domain.Prepayment {
	return domain.Prepayment{
		PrepaymentID:     m.PrepaymentID,
		OrgID:            m.OrgID,
		Kind:             domain.PartyKind(m.Kind),
		PartyID:          m.PartyID,
		Amount:           m.Amount,
		RemainingBalance: m.RemainingBalance,
		Status:           domain.PrepaymentStatus(m.Status),
		CurrencyCode:     m.CurrencyCode,
		DepositAccountID: m.DepositAccountID,
		Date:             m.Date,
		Description:      m.Description,
		TransactionID:    m.TransactionID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPrepaymentSlice converts a slice of model Prepayments to domain Prepayments
func ToDomainPrepaymentSlice(ms []models.Prepayment) []domain.Prepayment {
	ds := make([]domain.Prepayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPrepayment(m)
	}
	return ds
}

// ToModelPrepaymentApplication converts a domain application to its model form
func ToModelPrepaymentApplication(d domain.PrepaymentApplication) models.PrepaymentApplication {
	return models.PrepaymentApplication{
		ApplicationID: d.ApplicationID,
		PrepaymentID:  d.PrepaymentID,
		DocumentID:    d.DocumentID,
		AppliedAmount: d.AppliedAmount,
		TransactionID: d.TransactionID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPrepaymentApplication converts a model application to its domain form
func ToDomainPrepaymentApplication(m models.PrepaymentApplication) domain.PrepaymentApplication {
	return domain.PrepaymentApplication{
		ApplicationID: m.ApplicationID,
		PrepaymentID:  m.PrepaymentID,
		DocumentID:    m.DocumentID,
		AppliedAmount: m.AppliedAmount,
		TransactionID: m.TransactionID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
