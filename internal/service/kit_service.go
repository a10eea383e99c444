package service

import (
	"context"
	"fmt"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// KitService manages the shared packing list of a trip.
type KitService struct {
	store storage.Store
}

// NewKitService creates a new KitService with the given storage backend.
func NewKitService(store storage.Store) *KitService {
	return &KitService{store: store}
}

// AddItemParams are the fields for a new packing-list entry.
type AddItemParams struct {
	Name       string
	Quantity   int
	AssigneeID string
}

// AddItem puts an item on the trip's packing list.
func (s *KitService) AddItem(ctx context.Context, userID, tripID string, params AddItemParams) (*models.KitItem, error) {
	_, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, fmt.Errorf("%w: item name required", ErrInvalidInput)
	}
	if params.AssigneeID != "" && memberByID(members, params.AssigneeID) == nil {
		return nil, fmt.Errorf("%w: assignee %s is not on the roster", ErrInvalidInput, params.AssigneeID)
	}

	item := &models.KitItem{
		TripID:     tripID,
		Name:       params.Name,
		Quantity:   params.Quantity,
		AssigneeID: params.AssigneeID,
	}
	if err := s.store.CreateKitItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the trip's packing list.
func (s *KitService) ListItems(ctx context.Context, userID, tripID string) ([]*models.KitItem, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	return s.store.ListKitItems(ctx, tripID)
}

// UpdateItemParams carries optional packing-list updates; nil fields stay
// as-is.
type UpdateItemParams struct {
	Name       *string
	Quantity   *int
	AssigneeID *string
	Packed     *bool
}

// UpdateItem updates a packing-list entry.
func (s *KitService) UpdateItem(ctx context.Context, userID, tripID, itemID string, params UpdateItemParams) (*models.KitItem, error) {
	_, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetKitItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.TripID != tripID {
		return nil, fmt.Errorf("kit item %s: %w", itemID, storage.ErrNotFound)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("%w: item name required", ErrInvalidInput)
		}
		item.Name = *params.Name
	}
	if params.Quantity != nil {
		if *params.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		item.Quantity = *params.Quantity
	}
	if params.AssigneeID != nil {
		if *params.AssigneeID != "" && memberByID(members, *params.AssigneeID) == nil {
			return nil, fmt.Errorf("%w: assignee %s is not on the roster", ErrInvalidInput, *params.AssigneeID)
		}
		item.AssigneeID = *params.AssigneeID
	}
	if params.Packed != nil {
		item.Packed = *params.Packed
	}

	if err := s.store.UpdateKitItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a packing-list entry.
func (s *KitService) DeleteItem(ctx context.Context, userID, tripID, itemID string) error {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return err
	}
	item, err := s.store.GetKitItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.TripID != tripID {
		return fmt.Errorf("kit item %s: %w", itemID, storage.ErrNotFound)
	}
	return s.store.DeleteKitItem(ctx, itemID)
}
