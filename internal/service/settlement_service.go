package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// SettlementService tracks real-world payment progress against suggested
// transfers. Settlements are independent of the calculator: acknowledging
// a transfer copies its figures into a persisted record, and recalculation
// never touches existing settlements.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSettlementParams are the fields for acknowledging a transfer.
type CreateSettlementParams struct {
	FromMemberID string
	ToMemberID   string
	Amount       int64
	Note         string
}

// CreateSettlement records a settlement between two trip members.
func (s *SettlementService) CreateSettlement(ctx context.Context, userID, tripID string, params CreateSettlementParams) (*models.Settlement, error) {
	_, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if params.FromMemberID == params.ToMemberID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrInvalidInput)
	}
	if memberByID(members, params.FromMemberID) == nil {
		return nil, fmt.Errorf("%w: member %s is not on the roster", ErrInvalidInput, params.FromMemberID)
	}
	if memberByID(members, params.ToMemberID) == nil {
		return nil, fmt.Errorf("%w: member %s is not on the roster", ErrInvalidInput, params.ToMemberID)
	}

	settlement := &models.Settlement{
		TripID:       tripID,
		FromMemberID: params.FromMemberID,
		ToMemberID:   params.ToMemberID,
		Amount:       params.Amount,
		Note:         params.Note,
		CreatedBy:    userID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}
	slog.Info("settlement recorded",
		"trip_id", tripID,
		"settlement_id", settlement.ID,
		"from", settlement.FromMemberID,
		"to", settlement.ToMemberID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// ListSettlements returns the trip's settlements with payments attached.
func (s *SettlementService) ListSettlements(ctx context.Context, userID, tripID string) ([]*models.Settlement, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByTrip(ctx, tripID)
}

// RecordPayment logs a partial payment and returns the updated settlement.
func (s *SettlementService) RecordPayment(ctx context.Context, userID, tripID, settlementID string, amount int64) (*models.Settlement, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}

	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.TripID != tripID {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}

	if err := s.store.AddPayment(ctx, settlementID, &models.Payment{Amount: amount}); err != nil {
		return nil, err
	}
	return s.store.GetSettlement(ctx, settlementID)
}

// DeleteSettlement removes a settlement and its payment history.
func (s *SettlementService) DeleteSettlement(ctx context.Context, userID, tripID, settlementID string) error {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return err
	}
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return err
	}
	if settlement.TripID != tripID {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return s.store.DeleteSettlement(ctx, settlementID)
}
