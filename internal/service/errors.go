package service

import "errors"

var (
	// ErrNotTripMember is returned when the requesting user is neither the
	// trip owner nor on its member roster.
	ErrNotTripMember = errors.New("user is not a member of this trip")

	// ErrNotOwner is returned when an owner-only operation is attempted by
	// someone else.
	ErrNotOwner = errors.New("only the trip owner may do this")

	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
