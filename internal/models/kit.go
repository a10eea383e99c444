package models

// KitItem is an entry on a trip's shared packing list.
type KitItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// TripID is the trip this item belongs to.
	TripID string

	// Name is what needs packing (e.g., "Camp stove").
	Name string

	// Quantity is how many are needed. Defaults to 1.
	Quantity int

	// AssigneeID is the member responsible for bringing it. Empty if
	// unassigned.
	AssigneeID string

	// Packed marks the item as taken care of.
	Packed bool

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64
}
