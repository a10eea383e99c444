package models

import "github.com/shopspring/decimal"

// SplitMethod tags how an expense's shares were produced.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitCustom     SplitMethod = "custom"
	SplitPercentage SplitMethod = "percentage"
)

// Valid reports whether m is a known split method.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitCustom, SplitPercentage:
		return true
	}
	return false
}

// ExpenseStatus marks whether an expense is still being edited or final.
type ExpenseStatus string

const (
	ExpenseOpen   ExpenseStatus = "open"
	ExpenseClosed ExpenseStatus = "closed"
)

// Expense represents money spent on behalf of the group on a trip.
//
// Amount is denominated in Currency; NormalizedAmount is Amount converted
// into the trip's base currency at FxRate, captured once at entry time and
// never re-fetched. Both are int64 minor units.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// PayerID is the member who paid.
	PayerID string

	// Description is what the money was spent on (e.g., "Ferry tickets").
	Description string

	// Category is an optional grouping label (e.g., "transport").
	Category string

	// Amount is the total in minor units of Currency.
	Amount int64

	// Currency is the ISO 4217 code the expense was paid in.
	Currency string

	// FxRate is the fixed exchange rate to the trip's base currency,
	// captured when the expense was entered.
	FxRate decimal.Decimal

	// NormalizedAmount is Amount converted to base-currency minor units
	// at FxRate, rounded half-up.
	NormalizedAmount int64

	// Date is the Unix timestamp of when the money was spent.
	Date int64

	// Status is open while the expense may still be edited.
	Status ExpenseStatus

	// Deleted marks a soft-deleted expense. Deleted expenses are excluded
	// from every listing and calculation.
	Deleted bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Shares are the per-member portions of this expense. The shares of an
	// expense may legitimately sum below or above NormalizedAmount; the
	// calculator never assumes closure and the service only surfaces the gap.
	Shares []ShareAssignment
}

// Unassigned returns the difference between the expense's normalized total
// and the sum of its normalized shares. Positive means part of the expense
// is not yet assigned to anyone.
func (e *Expense) Unassigned() int64 {
	var assigned int64
	for _, s := range e.Shares {
		assigned += s.NormalizedAmount
	}
	return e.NormalizedAmount - assigned
}

// ShareAssignment links an expense to a member owing a portion of it.
type ShareAssignment struct {
	// ExpenseID is the expense this share belongs to.
	ExpenseID string

	// MemberID is the member owing this share.
	MemberID string

	// Amount is the share in minor units of the expense's currency.
	Amount int64

	// NormalizedAmount is the share in base-currency minor units,
	// converted at the expense's FxRate.
	NormalizedAmount int64

	// Method records how this share was produced.
	Method SplitMethod
}
