package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roamly/roamly/internal/currency"
	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// TripService manages trips, their member rosters and shared contacts.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTripParams are the caller-supplied fields for a new trip.
type CreateTripParams struct {
	Name         string
	StartDate    int64
	EndDate      int64
	BaseCurrency string
}

// CreateTrip creates a trip owned by userID and adds the owner to the
// roster as a going member.
func (s *TripService) CreateTrip(ctx context.Context, userID string, params CreateTripParams) (*models.Trip, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: trip name required", ErrInvalidInput)
	}
	if !currency.ValidCode(params.BaseCurrency) {
		return nil, fmt.Errorf("%w: base currency %q is not a currency code", ErrInvalidInput, params.BaseCurrency)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("owner %s: %w", userID, storage.ErrNotFound)
	}

	trip := &models.Trip{
		OwnerID:      userID,
		Name:         params.Name,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		BaseCurrency: params.BaseCurrency,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	owner := &models.Member{
		TripID: trip.ID,
		UserID: userID,
		Name:   user.DisplayName,
		RSVP:   models.RSVPGoing,
	}
	if err := s.store.AddMember(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to add owner to roster: %w", err)
	}

	slog.Info("trip created", "trip_id", trip.ID, "owner_id", userID)
	return trip, nil
}

// GetTrip returns a trip with its member roster, if userID may see it.
func (s *TripService) GetTrip(ctx context.Context, userID, tripID string) (*models.Trip, []*models.Member, error) {
	trip, members, err := s.authorize(ctx, userID, tripID)
	if err != nil {
		return nil, nil, err
	}
	return trip, members, nil
}

// ListTrips returns every trip the user owns or participates in.
func (s *TripService) ListTrips(ctx context.Context, userID string) ([]*models.Trip, error) {
	return s.store.ListTripsByUser(ctx, userID)
}

// UpdateTripParams carries optional trip updates; nil fields are left as-is.
type UpdateTripParams struct {
	Name         *string
	StartDate    *int64
	EndDate      *int64
	BaseCurrency *string
}

// UpdateTrip applies partial updates. Changing the base currency does not
// re-normalize existing expenses; their rates were fixed at entry.
func (s *TripService) UpdateTrip(ctx context.Context, userID, tripID string, params UpdateTripParams) (*models.Trip, error) {
	trip, _, err := s.authorize(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("%w: trip name required", ErrInvalidInput)
		}
		trip.Name = *params.Name
	}
	if params.StartDate != nil {
		trip.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		trip.EndDate = *params.EndDate
	}
	if params.BaseCurrency != nil {
		if !currency.ValidCode(*params.BaseCurrency) {
			return nil, fmt.Errorf("%w: base currency %q is not a currency code", ErrInvalidInput, *params.BaseCurrency)
		}
		trip.BaseCurrency = *params.BaseCurrency
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// DeleteTrip removes a trip and everything it owns. Owner only.
func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID string) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.OwnerID != userID {
		return ErrNotOwner
	}

	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		return err
	}
	slog.Info("trip deleted", "trip_id", tripID, "user_id", userID)
	return nil
}

// AddMemberParams are the fields for a new roster entry.
type AddMemberParams struct {
	Name   string
	UserID string
	RSVP   models.RSVPStatus
}

// AddMember adds someone to the trip roster. Members without an account
// are added by name only.
func (s *TripService) AddMember(ctx context.Context, userID, tripID string, params AddMemberParams) (*models.Member, error) {
	_, members, err := s.authorize(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, fmt.Errorf("%w: member name required", ErrInvalidInput)
	}
	if params.RSVP != "" && !params.RSVP.Valid() {
		return nil, fmt.Errorf("%w: unknown rsvp %q", ErrInvalidInput, params.RSVP)
	}
	for _, m := range members {
		if m.Name == params.Name {
			return nil, fmt.Errorf("%w: member %q already on the roster", ErrInvalidInput, params.Name)
		}
	}

	member := &models.Member{
		TripID: tripID,
		UserID: params.UserID,
		Name:   params.Name,
		RSVP:   params.RSVP,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMemberParams carries optional member updates.
type UpdateMemberParams struct {
	Name *string
	RSVP *models.RSVPStatus
}

// UpdateMember renames a member or changes their RSVP answer.
func (s *TripService) UpdateMember(ctx context.Context, userID, tripID, memberID string, params UpdateMemberParams) (*models.Member, error) {
	if _, _, err := s.authorize(ctx, userID, tripID); err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.TripID != tripID {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("%w: member name required", ErrInvalidInput)
		}
		member.Name = *params.Name
	}
	if params.RSVP != nil {
		if !params.RSVP.Valid() {
			return nil, fmt.Errorf("%w: unknown rsvp %q", ErrInvalidInput, *params.RSVP)
		}
		member.RSVP = *params.RSVP
	}

	if err := s.store.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember drops someone from the roster.
func (s *TripService) RemoveMember(ctx context.Context, userID, tripID, memberID string) error {
	if _, _, err := s.authorize(ctx, userID, tripID); err != nil {
		return err
	}
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if member.TripID != tripID {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	return s.store.RemoveMember(ctx, memberID)
}

// AddContact adds a shared contact card to the trip.
func (s *TripService) AddContact(ctx context.Context, userID, tripID string, contact *models.Contact) (*models.Contact, error) {
	if _, _, err := s.authorize(ctx, userID, tripID); err != nil {
		return nil, err
	}
	if contact.Name == "" {
		return nil, fmt.Errorf("%w: contact name required", ErrInvalidInput)
	}
	contact.TripID = tripID
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ListContacts returns the trip's contact cards.
func (s *TripService) ListContacts(ctx context.Context, userID, tripID string) ([]*models.Contact, error) {
	if _, _, err := s.authorize(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.store.ListContacts(ctx, tripID)
}

// DeleteContact removes a contact card from the trip.
func (s *TripService) DeleteContact(ctx context.Context, userID, tripID, contactID string) error {
	if _, _, err := s.authorize(ctx, userID, tripID); err != nil {
		return err
	}
	return s.store.DeleteContact(ctx, tripID, contactID)
}

func (s *TripService) authorize(ctx context.Context, userID, tripID string) (*models.Trip, []*models.Member, error) {
	return authorizeTrip(ctx, s.store, userID, tripID)
}
