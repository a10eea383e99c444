package service

import (
	"context"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// authorizeTrip loads the trip and roster and checks the user belongs to
// the trip, either as owner or as a roster member linked to their account.
func authorizeTrip(ctx context.Context, store storage.Store, userID, tripID string) (*models.Trip, []*models.Member, error) {
	trip, err := store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	members, err := store.ListMembers(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	if trip.OwnerID == userID {
		return trip, members, nil
	}
	for _, m := range members {
		if m.UserID == userID {
			return trip, members, nil
		}
	}
	return nil, nil, ErrNotTripMember
}

// memberByID returns the roster entry with the given ID, or nil.
func memberByID(members []*models.Member, memberID string) *models.Member {
	for _, m := range members {
		if m.ID == memberID {
			return m
		}
	}
	return nil
}
