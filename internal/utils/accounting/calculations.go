package accounting

import (
	"fmt"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to an entry amount based on account category and entry type.
// This is used in both services and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(entry domain.Entry, category domain.AccountCategory) (decimal.Decimal, error) {
	signedAmount := entry.Amount
	isDebit := entry.EntryType == domain.Debit

	// Determine sign based on accounting convention
	// DEBIT to ASSET/COGS/EXPENSE -> Positive (+)
	// CREDIT to ASSET/COGS/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch category {
	case domain.Asset, domain.COGS, domain.Expense:
		if !isDebit { // Credit to Asset/COGS/Expense
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit { // Debit to Liability/Equity/Revenue
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account category '%s' encountered for account ID %s", category, entry.AccountID)
	}
	return signedAmount, nil
}

// ValidateEntriesBalance checks if the entries for a transaction balance to zero.
func ValidateEntriesBalance(entries []domain.Entry, categories map[string]domain.AccountCategory) error {
	if len(entries) < 2 {
		return fmt.Errorf("transaction must have at least two entries")
	}

	zero := decimal.NewFromInt(0)
	debits := zero
	credits := zero

	for _, entry := range entries {
		// Ensure amount is positive
		if entry.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("entry amount must be positive for entry ID %s", entry.EntryID)
		}

		if _, ok := categories[entry.AccountID]; !ok {
			return fmt.Errorf("account category not found for account ID %s", entry.AccountID)
		}

		switch entry.EntryType {
		case domain.Debit:
			debits = debits.Add(entry.Amount)
		case domain.Credit:
			credits = credits.Add(entry.Amount)
		default:
			return fmt.Errorf("unknown entry type '%s' for entry ID %s", entry.EntryType, entry.EntryID)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("entries do not balance: debits %s vs credits %s", debits.String(), credits.String())
	}

	return nil
}

// SumEntriesByType totals the positive amounts of entries of the given type.
func SumEntriesByType(entries []domain.Entry, entryType domain.EntryType) decimal.Decimal {
	sum := decimal.Zero
	for _, entry := range entries {
		if entry.EntryType == entryType {
			sum = sum.Add(entry.Amount)
		}
	}
	return sum
}
