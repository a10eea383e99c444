package service

import (
	"context"
	"fmt"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// ChoiceService manages trip polls (menus, activity votes).
type ChoiceService struct {
	store storage.Store
}

// NewChoiceService creates a new ChoiceService with the given storage
// backend.
func NewChoiceService(store storage.Store) *ChoiceService {
	return &ChoiceService{store: store}
}

// CreateChoiceParams are the fields for a new poll.
type CreateChoiceParams struct {
	Title   string
	Options []string
}

// CreateChoice creates a poll with its options.
func (s *ChoiceService) CreateChoice(ctx context.Context, userID, tripID string, params CreateChoiceParams) (*models.Choice, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	if params.Title == "" {
		return nil, fmt.Errorf("%w: choice title required", ErrInvalidInput)
	}
	if len(params.Options) < 2 {
		return nil, fmt.Errorf("%w: a choice needs at least two options", ErrInvalidInput)
	}

	choice := &models.Choice{TripID: tripID, Title: params.Title}
	for _, label := range params.Options {
		if label == "" {
			return nil, fmt.Errorf("%w: option label required", ErrInvalidInput)
		}
		choice.Options = append(choice.Options, models.ChoiceOption{Label: label})
	}

	if err := s.store.CreateChoice(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// ListChoices returns the trip's polls with vote tallies.
func (s *ChoiceService) ListChoices(ctx context.Context, userID, tripID string) ([]*models.Choice, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	return s.store.ListChoicesByTrip(ctx, tripID)
}

// CastVote records memberID's pick on a choice, replacing any earlier one.
func (s *ChoiceService) CastVote(ctx context.Context, userID, tripID, choiceID, memberID, optionID string) (*models.Choice, error) {
	_, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}
	if memberByID(members, memberID) == nil {
		return nil, fmt.Errorf("%w: member %s is not on the roster", ErrInvalidInput, memberID)
	}

	choice, err := s.store.GetChoice(ctx, choiceID)
	if err != nil {
		return nil, err
	}
	if choice.TripID != tripID {
		return nil, fmt.Errorf("choice %s: %w", choiceID, storage.ErrNotFound)
	}

	vote := &models.Vote{ChoiceID: choiceID, MemberID: memberID, OptionID: optionID}
	if err := s.store.CastVote(ctx, vote); err != nil {
		return nil, err
	}
	return s.store.GetChoice(ctx, choiceID)
}

// DeleteChoice removes a poll with its options and votes.
func (s *ChoiceService) DeleteChoice(ctx context.Context, userID, tripID, choiceID string) error {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return err
	}
	choice, err := s.store.GetChoice(ctx, choiceID)
	if err != nil {
		return err
	}
	if choice.TripID != tripID {
		return fmt.Errorf("choice %s: %w", choiceID, storage.ErrNotFound)
	}
	return s.store.DeleteChoice(ctx, choiceID)
}
