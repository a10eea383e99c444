package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roamly/roamly/internal/calculator"
	"github.com/roamly/roamly/internal/currency"
	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

var oneRate = decimal.NewFromInt(1)

// ExpenseService manages trip expenses and their share assignments.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ShareInput is one member's requested portion of an expense. Amount is
// used for custom splits, PercentBps (basis points, 1% = 100) for
// percentage splits; equal splits need member IDs only.
type ShareInput struct {
	MemberID   string
	Amount     int64
	PercentBps int64
}

// CreateExpenseParams are the caller-supplied fields for a new expense.
// Amount is in minor units of Currency; FxRate converts to the trip's
// base currency and is fixed from here on.
type CreateExpenseParams struct {
	PayerID     string
	Description string
	Category    string
	Amount      int64
	Currency    string
	FxRate      string
	Date        int64
	Method      models.SplitMethod
	Shares      []ShareInput
}

// CreateExpense validates, splits and persists an expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID, tripID string, params CreateExpenseParams) (*models.Expense, error) {
	trip, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}

	expense, err := buildExpense(trip, members, params)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("expense created",
		"trip_id", tripID,
		"expense_id", expense.ID,
		"amount", currency.Major(expense.Amount),
		"currency", expense.Currency,
		"normalized", currency.Major(expense.NormalizedAmount),
	)
	return expense, nil
}

// GetExpense returns a single live expense.
func (s *ExpenseService) GetExpense(ctx context.Context, userID, tripID, expenseID string) (*models.Expense, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.TripID != tripID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return expense, nil
}

// ListExpenses returns the trip's live expenses.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID, tripID string) ([]*models.Expense, error) {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByTrip(ctx, tripID)
}

// UpdateExpense replaces an expense's fields and shares. Closed expenses
// cannot be edited.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, tripID, expenseID string, params CreateExpenseParams) (*models.Expense, error) {
	trip, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if existing.TripID != tripID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if existing.Status == models.ExpenseClosed {
		return nil, fmt.Errorf("%w: expense is closed", ErrInvalidInput)
	}

	expense, err := buildExpense(trip, members, params)
	if err != nil {
		return nil, err
	}
	expense.ID = existing.ID
	expense.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense, excluding it from every listing
// and calculation while keeping the row.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, tripID, expenseID string) error {
	if _, _, err := authorizeTrip(ctx, s.store, userID, tripID); err != nil {
		return err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.TripID != tripID {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return s.store.SoftDeleteExpense(ctx, expenseID)
}

// buildExpense validates params against the trip roster and produces the
// expense with shares split per the requested method, all normalized into
// the trip's base currency at the fixed rate.
func buildExpense(trip *models.Trip, members []*models.Member, params CreateExpenseParams) (*models.Expense, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !currency.ValidCode(params.Currency) {
		return nil, fmt.Errorf("%w: currency %q is not a currency code", ErrInvalidInput, params.Currency)
	}
	if !params.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown split method %q", ErrInvalidInput, params.Method)
	}
	if len(params.Shares) == 0 {
		return nil, fmt.Errorf("%w: at least one share required", ErrInvalidInput)
	}
	if memberByID(members, params.PayerID) == nil {
		return nil, fmt.Errorf("%w: payer %s is not on the roster", ErrInvalidInput, params.PayerID)
	}
	for _, sh := range params.Shares {
		if memberByID(members, sh.MemberID) == nil {
			return nil, fmt.Errorf("%w: member %s is not on the roster", ErrInvalidInput, sh.MemberID)
		}
	}

	rate, err := currency.ParseRate(params.FxRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if params.Currency == trip.BaseCurrency && !rate.Equal(oneRate) {
		return nil, fmt.Errorf("%w: rate must be 1 for base-currency expenses", ErrInvalidInput)
	}

	// Resolve each member's share in the expense currency.
	amounts := make([]int64, len(params.Shares))
	switch params.Method {
	case models.SplitEqual:
		parts, err := calculator.SplitEqual(params.Amount, len(params.Shares))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		copy(amounts, parts)
	case models.SplitPercentage:
		bps := make([]int64, len(params.Shares))
		for i, sh := range params.Shares {
			bps[i] = sh.PercentBps
		}
		parts, err := calculator.SplitPercent(params.Amount, bps)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		copy(amounts, parts)
	case models.SplitCustom:
		for i, sh := range params.Shares {
			if sh.Amount < 0 {
				return nil, fmt.Errorf("%w: negative share for member %s", ErrInvalidInput, sh.MemberID)
			}
			amounts[i] = sh.Amount
		}
	}

	date := params.Date
	if date == 0 {
		date = time.Now().Unix()
	}

	expense := &models.Expense{
		TripID:           trip.ID,
		PayerID:          params.PayerID,
		Description:      params.Description,
		Category:         params.Category,
		Amount:           params.Amount,
		Currency:         params.Currency,
		FxRate:           rate,
		NormalizedAmount: currency.Normalize(params.Amount, rate),
		Date:             date,
		Status:           models.ExpenseOpen,
	}
	for i, sh := range params.Shares {
		expense.Shares = append(expense.Shares, models.ShareAssignment{
			MemberID:         sh.MemberID,
			Amount:           amounts[i],
			NormalizedAmount: currency.Normalize(amounts[i], rate),
			Method:           params.Method,
		})
	}
	return expense, nil
}
