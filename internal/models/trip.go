package models

// RSVPStatus is a member's attendance answer for a trip.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPDeclined RSVPStatus = "declined"
)

// Valid reports whether s is one of the known RSVP answers.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPGoing, RSVPMaybe, RSVPDeclined:
		return true
	}
	return false
}

// Trip represents a planned group trip. It owns the member roster and acts
// as the scope for expenses, choices, kit items and contacts.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// OwnerID is the user ID of the trip creator.
	OwnerID string

	// Name is the display name of the trip (e.g., "Dolomites 2026").
	Name string

	// StartDate and EndDate are Unix timestamps bounding the trip.
	// Zero means not yet decided.
	StartDate int64
	EndDate   int64

	// BaseCurrency is the ISO 4217 code all expense amounts are
	// normalized into (e.g., "EUR").
	BaseCurrency string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Member is a participant in a trip. Members exist per trip; the same
// registered user joining two trips yields two member rows.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// TripID is the trip this member belongs to.
	TripID string

	// UserID links to a registered user account. Empty for members added
	// by name only (no account).
	UserID string

	// Name is the display name shown on balances and kit lists.
	Name string

	// RSVP is the member's current attendance answer.
	RSVP RSVPStatus

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
