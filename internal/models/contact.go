package models

// Contact is a shared contact card for a trip (accommodation host, guide,
// emergency number).
type Contact struct {
	// ID is the unique identifier for the contact (UUID format).
	ID string

	// TripID is the trip this contact belongs to.
	TripID string

	// Name is the contact's display name.
	Name string

	// Phone is the contact's phone number, stored as entered.
	Phone string

	// Note is free-form context ("speaks English, call after 10am").
	Note string

	// CreatedAt is the Unix timestamp when the contact was added.
	CreatedAt int64
}
