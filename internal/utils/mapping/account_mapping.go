package mapping

import (
	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		OrgID:        d.OrgID,
		Code:         d.Code,
		Name:         d.Name,
		Category:     models.AccountCategory(d.Category),
		CurrencyCode: d.CurrencyCode,
		Description:  d.Description,
		IsActive:     d.IsActive,
		IsSystem:     d.IsSystem,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		Balance:      d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		OrgID:        m.OrgID,
		Code:         m.Code,
		Name:         m.Name,
		Category:     domain.AccountCategory(m.Category),
		CurrencyCode: m.CurrencyCode,
		Description:  m.Description,
		IsActive:     m.IsActive,
		IsSystem:     m.IsSystem,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		Balance:      m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToDomainAccountConfiguration folds configuration rows into the domain mapping.
func ToDomainAccountConfiguration(orgID string, rows []models.AccountConfigurationRow) domain.AccountConfiguration {
	cfg := domain.AccountConfiguration{
		OrgID:    orgID,
		Accounts: make(map[domain.SystemRole]string, len(rows)),
	}
	for _, row := range rows {
		cfg.Accounts[domain.SystemRole(row.Role)] = row.AccountID
	}
	return cfg
}
