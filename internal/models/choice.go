package models

// Choice is a group poll attached to a trip: a question with a fixed set
// of options, one vote per member.
type Choice struct {
	// ID is the unique identifier for the choice (UUID format).
	ID string

	// TripID is the trip this choice belongs to.
	TripID string

	// Title is the question being decided (e.g., "Saturday dinner").
	Title string

	// Options are the selectable answers.
	Options []ChoiceOption

	// CreatedAt is the Unix timestamp when the choice was created.
	CreatedAt int64
}

// ChoiceOption is one selectable answer of a choice.
type ChoiceOption struct {
	// ID is the unique identifier for the option (UUID format).
	ID string

	// ChoiceID is the choice this option belongs to.
	ChoiceID string

	// Label is the option text.
	Label string

	// Votes is the current tally. Derived on read, not persisted.
	Votes int
}

// Vote records a member's pick for a choice. A member has at most one vote
// per choice; re-voting replaces the previous pick.
type Vote struct {
	ChoiceID string
	MemberID string
	OptionID string
}
