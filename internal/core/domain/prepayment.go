package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyKind distinguishes customer-side records from vendor-side ones.
type PartyKind string

const (
	KindCustomer PartyKind = "CUSTOMER"
	KindVendor   PartyKind = "VENDOR"
)

// PrepaymentStatus is a pure function of remaining balance vs original amount;
// it is stored for query convenience but never set independently.
type PrepaymentStatus string

const (
	PrepaymentAvailable        PrepaymentStatus = "AVAILABLE"
	PrepaymentPartiallyApplied PrepaymentStatus = "PARTIALLY_APPLIED"
	PrepaymentFullyApplied     PrepaymentStatus = "FULLY_APPLIED"
)

// Prepayment is money received from a customer (or paid to a vendor) before
// any document exists to apply it to.
type Prepayment struct {
	PrepaymentID     string           `json:"prepaymentID"`
	OrgID            string           `json:"orgID"`
	Kind             PartyKind        `json:"kind"`
	PartyID          string           `json:"partyID"`
	Amount           decimal.Decimal  `json:"amount"` // Fixed at creation
	RemainingBalance decimal.Decimal  `json:"remainingBalance"`
	Status           PrepaymentStatus `json:"status"`
	CurrencyCode     string           `json:"currencyCode"`
	DepositAccountID string           `json:"depositAccountID"` // Cash account the money moved through
	Date             time.Time        `json:"date"`
	Description      string           `json:"description"`
	TransactionID    string           `json:"transactionID"` // Posting at creation
	AuditFields
}

// DeriveStatus computes the status implied by the remaining balance.
func (p Prepayment) DeriveStatus() PrepaymentStatus {
	switch {
	case p.RemainingBalance.IsZero():
		return PrepaymentFullyApplied
	case p.RemainingBalance.Equal(p.Amount):
		return PrepaymentAvailable
	default:
		return PrepaymentPartiallyApplied
	}
}

// PrepaymentApplication is an immutable record of part of a prepayment being
// applied to a document.
type PrepaymentApplication struct {
	ApplicationID string          `json:"applicationID"`
	PrepaymentID  string          `json:"prepaymentID"`
	DocumentID    string          `json:"documentID"`
	AppliedAmount decimal.Decimal `json:"appliedAmount"` // Strictly positive
	TransactionID string          `json:"transactionID"` // Transfer posted for this application
	AuditFields
}
