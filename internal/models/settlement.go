package models

// Settlement represents an acknowledged payment plan between two trip
// members to clear a debt. It is created when a user acts on a suggested
// transfer; the suggestion itself is never persisted.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// TripID is the trip this settlement belongs to.
	TripID string

	// FromMemberID is the member who owes (debtor settling up).
	FromMemberID string

	// ToMemberID is the member being paid (creditor).
	ToMemberID string

	// Amount is the agreed total in base-currency minor units.
	Amount int64

	// Note is an optional description for the settlement.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// Payments are the partial payments logged against this settlement,
	// oldest first.
	Payments []Payment
}

// Paid returns the sum of recorded payments.
func (s *Settlement) Paid() int64 {
	var total int64
	for _, p := range s.Payments {
		total += p.Amount
	}
	return total
}

// Remaining returns the amount still outstanding. It can go negative if
// payments overshoot; the presentation layer decides how to surface that.
func (s *Settlement) Remaining() int64 {
	return s.Amount - s.Paid()
}

// Payment is a single partial payment logged against a settlement.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// SettlementID is the settlement this payment belongs to.
	SettlementID string

	// Amount is the payment in base-currency minor units.
	Amount int64

	// CreatedAt is the Unix timestamp when the payment was logged.
	CreatedAt int64
}
