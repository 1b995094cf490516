package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prepayment is money received or paid ahead of any document.
type Prepayment struct {
	PrepaymentID     string          `db:"prepayment_id"`
	OrgID            string          `db:"org_id"`
	Kind             string          `db:"kind"` // CUSTOMER or VENDOR
	PartyID          string          `db:"party_id"`
	Amount           decimal.Decimal `db:"amount"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`
	Status           string          `db:"status"`
	CurrencyCode     string          `db:"currency_code"`
	DepositAccountID string          `db:"deposit_account_id"`
	Date             time.Time       `db:"date"`
	Description      string          `db:"description"`
	TransactionID    string          `db:"transaction_id"`
	AuditFields
}

// PrepaymentApplication records part of a prepayment applied to a document.
type PrepaymentApplication struct {
	ApplicationID string          `db:"application_id"`
	PrepaymentID  string          `db:"prepayment_id"`
	DocumentID    string          `db:"document_id"`
	AppliedAmount decimal.Decimal `db:"applied_amount"`
	TransactionID string          `db:"transaction_id"`
	AuditFields
}
