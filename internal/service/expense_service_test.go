package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/models"
)

func TestCreateExpenseForeignCurrency(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.store)

	expense, err := svc.CreateExpense(context.Background(), f.ownerID, f.trip.ID, CreateExpenseParams{
		PayerID:     f.members["Alice"].ID,
		Description: "Ferry tickets",
		Amount:      9000,
		Currency:    "GBP",
		FxRate:      "1.15",
		Method:      models.SplitEqual,
		Shares: []ShareInput{
			{MemberID: f.members["Alice"].ID},
			{MemberID: f.members["Bob"].ID},
			{MemberID: f.members["Carol"].ID},
		},
	})
	require.NoError(t, err)

	// 9000 * 1.15 = 10350 base-currency minor units.
	assert.Equal(t, int64(10350), expense.NormalizedAmount)
	require.Len(t, expense.Shares, 3)
	// Each 3000 GBP share normalizes independently at the fixed rate.
	for _, sh := range expense.Shares {
		assert.Equal(t, int64(3450), sh.NormalizedAmount)
	}
}

func TestCreateExpensePercentageSplit(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.store)

	expense, err := svc.CreateExpense(context.Background(), f.ownerID, f.trip.ID, CreateExpenseParams{
		PayerID:     f.members["Bob"].ID,
		Description: "Cabin rental",
		Amount:      20000,
		Currency:    "EUR",
		FxRate:      "1",
		Method:      models.SplitPercentage,
		Shares: []ShareInput{
			{MemberID: f.members["Alice"].ID, PercentBps: 5000},
			{MemberID: f.members["Bob"].ID, PercentBps: 3000},
			{MemberID: f.members["Carol"].ID, PercentBps: 2000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), expense.Shares[0].Amount)
	assert.Equal(t, int64(6000), expense.Shares[1].Amount)
	assert.Equal(t, int64(4000), expense.Shares[2].Amount)
}

func TestCreateExpenseValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.store)
	ctx := context.Background()

	base := CreateExpenseParams{
		PayerID:     f.members["Alice"].ID,
		Description: "Lunch",
		Amount:      1000,
		Currency:    "EUR",
		FxRate:      "1",
		Method:      models.SplitEqual,
		Shares:      []ShareInput{{MemberID: f.members["Bob"].ID}},
	}

	tests := []struct {
		name   string
		mutate func(*CreateExpenseParams)
	}{
		{"zero amount", func(p *CreateExpenseParams) { p.Amount = 0 }},
		{"bad currency", func(p *CreateExpenseParams) { p.Currency = "euros" }},
		{"unknown method", func(p *CreateExpenseParams) { p.Method = "vibes" }},
		{"no shares", func(p *CreateExpenseParams) { p.Shares = nil }},
		{"payer off roster", func(p *CreateExpenseParams) { p.PayerID = "nope" }},
		{"assignee off roster", func(p *CreateExpenseParams) { p.Shares = []ShareInput{{MemberID: "nope"}} }},
		{"zero rate", func(p *CreateExpenseParams) { p.FxRate = "0" }},
		{"base currency with rate", func(p *CreateExpenseParams) { p.FxRate = "1.1" }},
		{"negative custom share", func(p *CreateExpenseParams) {
			p.Method = models.SplitCustom
			p.Shares = []ShareInput{{MemberID: f.members["Bob"].ID, Amount: -1}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			params.Shares = append([]ShareInput(nil), base.Shares...)
			tt.mutate(&params)
			_, err := svc.CreateExpense(ctx, f.ownerID, f.trip.ID, params)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateExpenseReplacesShares(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.store)
	ctx := context.Background()

	expense := f.equalExpense(t, "Alice", 6000, "Alice", "Bob", "Carol")

	updated, err := svc.UpdateExpense(ctx, f.ownerID, f.trip.ID, expense.ID, CreateExpenseParams{
		PayerID:     f.members["Alice"].ID,
		Description: "Dinner, Carol skipped",
		Amount:      6000,
		Currency:    "EUR",
		FxRate:      "1",
		Method:      models.SplitEqual,
		Shares: []ShareInput{
			{MemberID: f.members["Alice"].ID},
			{MemberID: f.members["Bob"].ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, expense.ID, updated.ID)
	require.Len(t, updated.Shares, 2)
	assert.Equal(t, int64(3000), updated.Shares[0].Amount)
}

func TestDeleteExpenseIsSoft(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.store)
	ctx := context.Background()

	expense := f.equalExpense(t, "Alice", 6000, "Bob")
	require.NoError(t, svc.DeleteExpense(ctx, f.ownerID, f.trip.ID, expense.ID))

	list, err := svc.ListExpenses(ctx, f.ownerID, f.trip.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExpenseScopedToTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := NewTripService(f.store).CreateTrip(ctx, f.ownerID, CreateTripParams{Name: "Other", BaseCurrency: "EUR"})
	require.NoError(t, err)

	expense := f.equalExpense(t, "Alice", 6000, "Bob")

	// The expense belongs to the first trip; addressing it through the
	// other trip must not resolve.
	_, err = NewExpenseService(f.store).GetExpense(ctx, f.ownerID, other.ID, expense.ID)
	assert.Error(t, err)
}
