package models

import (
	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	COGS      AccountCategory = "COGS"
	Expense   AccountCategory = "EXPENSE"
)

// Account represents a ledger account row.
type Account struct {
	AccountID    string          `db:"account_id"`
	OrgID        string          `db:"org_id"`
	Code         int             `db:"code"`
	Name         string          `db:"name"`
	Category     AccountCategory `db:"category"`
	CurrencyCode string          `db:"currency_code"`
	Description  string          `db:"description"`
	IsActive     bool            `db:"is_active"`
	IsSystem     bool            `db:"is_system"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Persisted balance projection
}

// AccountConfigurationRow maps one system role to one account for an org.
type AccountConfigurationRow struct {
	OrgID     string `db:"org_id"`
	Role      string `db:"role"`
	AccountID string `db:"account_id"`
	AuditFields
}
