package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
	"github.com/roamly/roamly/internal/storage/sqlite"
)

type fixture struct {
	store   storage.Store
	ownerID string
	trip    *models.Trip
	members map[string]*models.Member // by name
}

// newFixture builds a store with a registered owner, a trip and a
// three-person roster.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	owner := models.NewUser("alice@example.com", "Alice", "hash")
	require.NoError(t, store.CreateUser(ctx, owner))

	trips := NewTripService(store)
	trip, err := trips.CreateTrip(ctx, owner.ID, CreateTripParams{Name: "Dolomites", BaseCurrency: "EUR"})
	require.NoError(t, err)

	f := &fixture{store: store, ownerID: owner.ID, trip: trip, members: map[string]*models.Member{}}

	roster, err := store.ListMembers(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	f.members["Alice"] = roster[0]

	for _, name := range []string{"Bob", "Carol"} {
		m, err := trips.AddMember(ctx, owner.ID, trip.ID, AddMemberParams{Name: name, RSVP: models.RSVPGoing})
		require.NoError(t, err)
		f.members[name] = m
	}
	return f
}

func (f *fixture) equalExpense(t *testing.T, payer string, amount int64, assignees ...string) *models.Expense {
	t.Helper()
	svc := NewExpenseService(f.store)

	params := CreateExpenseParams{
		PayerID:     f.members[payer].ID,
		Description: "test expense",
		Amount:      amount,
		Currency:    "EUR",
		FxRate:      "1",
		Date:        1750000000,
		Method:      models.SplitEqual,
	}
	for _, name := range assignees {
		params.Shares = append(params.Shares, ShareInput{MemberID: f.members[name].ID})
	}

	expense, err := svc.CreateExpense(context.Background(), f.ownerID, f.trip.ID, params)
	require.NoError(t, err)
	return expense
}

func TestReportSingleExpense(t *testing.T) {
	f := newFixture(t)
	f.equalExpense(t, "Alice", 10000, "Alice", "Bob", "Carol")

	report, err := NewBalanceService(f.store).Report(context.Background(), f.ownerID, f.trip.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), report.TotalSpent)
	assert.Equal(t, "EUR", report.BaseCurrency)
	require.Len(t, report.Balances, 3)

	byName := map[string]MemberBalanceReport{}
	for _, b := range report.Balances {
		byName[b.MemberName] = b
	}
	// 10000 splits as 3334 + 3333 + 3333; the remainder cent lands on the
	// first share.
	assert.Equal(t, int64(10000), byName["Alice"].TotalPaid)
	assert.Equal(t, int64(10000-3334), byName["Alice"].NetBalance)
	assert.Equal(t, int64(-3333), byName["Bob"].NetBalance)
	assert.Equal(t, int64(-3333), byName["Carol"].NetBalance)

	require.Len(t, report.Settlements, 2)
	for _, s := range report.Settlements {
		assert.Equal(t, byName["Alice"].MemberID, s.ToMemberID)
		assert.Equal(t, int64(3333), s.Amount)
		assert.Equal(t, int64(1750000000), s.OldestDebtDate)
	}
}

func TestReportOmitsDeletedExpenses(t *testing.T) {
	f := newFixture(t)
	kept := f.equalExpense(t, "Alice", 6000, "Bob", "Carol")
	dropped := f.equalExpense(t, "Bob", 9000, "Alice", "Bob", "Carol")

	svc := NewExpenseService(f.store)
	require.NoError(t, svc.DeleteExpense(context.Background(), f.ownerID, f.trip.ID, dropped.ID))

	report, err := NewBalanceService(f.store).Report(context.Background(), f.ownerID, f.trip.ID)
	require.NoError(t, err)
	assert.Equal(t, kept.NormalizedAmount, report.TotalSpent)

	byName := map[string]MemberBalanceReport{}
	for _, b := range report.Balances {
		byName[b.MemberName] = b
	}
	assert.Equal(t, int64(6000), byName["Alice"].NetBalance)
	assert.Equal(t, int64(-3000), byName["Bob"].NetBalance)
}

func TestReportInactiveMembersShowZeros(t *testing.T) {
	f := newFixture(t)
	f.equalExpense(t, "Alice", 5000, "Alice", "Bob")

	report, err := NewBalanceService(f.store).Report(context.Background(), f.ownerID, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, report.Balances, 3)

	for _, b := range report.Balances {
		if b.MemberName == "Carol" {
			assert.Zero(t, b.TotalPaid)
			assert.Zero(t, b.TotalOwed)
			assert.Zero(t, b.NetBalance)
		}
	}
}

func TestReportEmptyTrip(t *testing.T) {
	f := newFixture(t)

	report, err := NewBalanceService(f.store).Report(context.Background(), f.ownerID, f.trip.ID)
	require.NoError(t, err)
	assert.Zero(t, report.TotalSpent)
	assert.Empty(t, report.Settlements)
	require.Len(t, report.Balances, 3)
	for _, b := range report.Balances {
		assert.Zero(t, b.NetBalance)
	}
}

func TestReportRequiresMembership(t *testing.T) {
	f := newFixture(t)

	stranger := models.NewUser("mallory@example.com", "Mallory", "hash")
	require.NoError(t, f.store.CreateUser(context.Background(), stranger))

	_, err := NewBalanceService(f.store).Report(context.Background(), stranger.ID, f.trip.ID)
	assert.ErrorIs(t, err, ErrNotTripMember)
}
