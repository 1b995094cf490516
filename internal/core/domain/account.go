package domain

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

// CodeBand is the inclusive range of account codes reserved for a category.
type CodeBand struct {
	Low  int
	High int
}

// codeBands assigns each category a thousand-block of account codes.
var codeBands = map[AccountCategory]CodeBand{
	Asset:     {1000, 1999},
	Liability: {2000, 2999},
	Equity:    {3000, 3999},
	Revenue:   {4000, 4999},
	COGS:      {5000, 5999},
	Expense:   {6000, 6999},
}

// BandFor returns the code band for a category and whether the category is known.
func BandFor(category AccountCategory) (CodeBand, bool) {
	band, ok := codeBands[category]
	return band, ok
}

// Contains reports whether code falls inside the band.
func (b CodeBand) Contains(code int) bool {
	return code >= b.Low && code <= b.High
}

// Account represents a ledger account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (e.g., UUID)
	OrgID        string          `json:"orgID"`        // Owning organization (NON-NULL)
	Code         int             `json:"code"`         // Unique per org, bound to the category band
	Name         string          `json:"name"`         // User-defined name
	Category     AccountCategory `json:"category"`     // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // ISO 4217 code of the books
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`     // Inactive accounts reject new entries
	IsSystem     bool            `json:"isSystem"`     // Linked via AccountConfiguration; cannot be deactivated
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Cached projection; entries remain the source of truth
}

// SystemRole names an account slot the engines resolve through the org's
// AccountConfiguration rather than by hard-coded account ID.
type SystemRole string

const (
	RoleCash                 SystemRole = "CASH"
	RoleAccountsReceivable   SystemRole = "ACCOUNTS_RECEIVABLE"
	RoleAccountsPayable      SystemRole = "ACCOUNTS_PAYABLE"
	RoleSalesRevenue         SystemRole = "SALES_REVENUE"
	RoleCustomerPrepayments  SystemRole = "CUSTOMER_PREPAYMENTS"
	RoleVendorPrepayments    SystemRole = "VENDOR_PREPAYMENTS"
	RoleUnusedCustomerCredit SystemRole = "UNUSED_CUSTOMER_CREDITS"
	RoleUnusedVendorCredit   SystemRole = "UNUSED_VENDOR_CREDITS"
	RolePurchasesExpense     SystemRole = "PURCHASES_EXPENSE"
)

// AccountConfiguration maps an org's system roles to concrete accounts.
type AccountConfiguration struct {
	OrgID    string                `json:"orgID"`
	Accounts map[SystemRole]string `json:"accounts"` // role -> accountID
	AuditFields
}

// AccountFor returns the account ID bound to role, if configured.
func (c AccountConfiguration) AccountFor(role SystemRole) (string, bool) {
	id, ok := c.Accounts[role]
	return id, ok
}
