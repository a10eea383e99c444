package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedTrip(t *testing.T, store *SQLiteStore) (*models.Trip, []*models.Member) {
	t.Helper()
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	trip := &models.Trip{OwnerID: user.ID, Name: "Dolomites", BaseCurrency: "EUR"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	var members []*models.Member
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		m := &models.Member{TripID: trip.ID, Name: name, RSVP: models.RSVPGoing}
		if name == "Alice" {
			m.UserID = user.ID
		}
		if err := store.AddMember(ctx, m); err != nil {
			t.Fatalf("failed to add member %s: %v", name, err)
		}
		members = append(members, m)
	}
	return trip, members
}

func TestTripRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	if trip.ID == "" || trip.CreatedAt == 0 {
		t.Fatal("expected trip ID and CreatedAt to be populated")
	}

	got, err := store.GetTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to get trip: %v", err)
	}
	if got.Name != "Dolomites" || got.BaseCurrency != "EUR" {
		t.Errorf("unexpected trip: %+v", got)
	}

	roster, err := store.ListMembers(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to list members: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("expected 3 members, got %d", len(roster))
	}

	trips, err := store.ListTripsByUser(ctx, members[0].UserID)
	if err != nil {
		t.Fatalf("failed to list trips: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip for owner, got %d", len(trips))
	}

	if _, err := store.GetTrip(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTripCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	item := &models.KitItem{TripID: trip.ID, Name: "Stove", Quantity: 1}
	if err := store.CreateKitItem(ctx, item); err != nil {
		t.Fatalf("failed to create kit item: %v", err)
	}

	if err := store.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("failed to delete trip: %v", err)
	}
	if _, err := store.GetMember(ctx, members[0].ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected member to be gone, got %v", err)
	}
	if _, err := store.GetKitItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected kit item to be gone, got %v", err)
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	expense := &models.Expense{
		TripID:           trip.ID,
		PayerID:          members[0].ID,
		Description:      "Ferry tickets",
		Category:         "transport",
		Amount:           9000,
		Currency:         "GBP",
		FxRate:           decimal.RequireFromString("1.15"),
		NormalizedAmount: 10350,
		Date:             1750000000,
		Status:           models.ExpenseOpen,
		Shares: []models.ShareAssignment{
			{MemberID: members[0].ID, Amount: 3000, NormalizedAmount: 3450, Method: models.SplitEqual},
			{MemberID: members[1].ID, Amount: 3000, NormalizedAmount: 3450, Method: models.SplitEqual},
			{MemberID: members[2].ID, Amount: 3000, NormalizedAmount: 3450, Method: models.SplitEqual},
		},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to get expense: %v", err)
	}
	if !got.FxRate.Equal(expense.FxRate) {
		t.Errorf("fx rate round trip: want %s, got %s", expense.FxRate, got.FxRate)
	}
	if got.NormalizedAmount != 10350 {
		t.Errorf("normalized amount: want 10350, got %d", got.NormalizedAmount)
	}
	if len(got.Shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(got.Shares))
	}

	// Update replaces the share set.
	got.Description = "Ferry + fuel"
	got.Shares = got.Shares[:2]
	if err := store.UpdateExpense(ctx, got); err != nil {
		t.Fatalf("failed to update expense: %v", err)
	}
	updated, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to re-get expense: %v", err)
	}
	if updated.Description != "Ferry + fuel" || len(updated.Shares) != 2 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestSoftDeleteExcludesExpense(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	one := decimal.NewFromInt(1)
	for _, desc := range []string{"Lunch", "Dinner"} {
		e := &models.Expense{
			TripID: trip.ID, PayerID: members[0].ID, Description: desc,
			Amount: 1000, Currency: "EUR", FxRate: one, NormalizedAmount: 1000,
			Date: 1750000000, Status: models.ExpenseOpen,
			Shares: []models.ShareAssignment{
				{MemberID: members[1].ID, Amount: 1000, NormalizedAmount: 1000, Method: models.SplitCustom},
			},
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("failed to create expense: %v", err)
		}
		if desc == "Lunch" {
			if err := store.SoftDeleteExpense(ctx, e.ID); err != nil {
				t.Fatalf("failed to soft-delete: %v", err)
			}
			if _, err := store.GetExpense(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected deleted expense to be invisible, got %v", err)
			}
			// A second delete targets no live row.
			if err := store.SoftDeleteExpense(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected ErrNotFound on double delete, got %v", err)
			}
		}
	}

	live, err := store.ListExpensesByTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to list expenses: %v", err)
	}
	if len(live) != 1 || live[0].Description != "Dinner" {
		t.Errorf("expected only Dinner to remain, got %+v", live)
	}
}

func TestSettlementPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	settlement := &models.Settlement{
		TripID:       trip.ID,
		FromMemberID: members[1].ID,
		ToMemberID:   members[0].ID,
		Amount:       5000,
		CreatedBy:    members[0].UserID,
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("failed to create settlement: %v", err)
	}

	for _, amount := range []int64{2000, 1500} {
		if err := store.AddPayment(ctx, settlement.ID, &models.Payment{Amount: amount}); err != nil {
			t.Fatalf("failed to add payment: %v", err)
		}
	}

	got, err := store.GetSettlement(ctx, settlement.ID)
	if err != nil {
		t.Fatalf("failed to get settlement: %v", err)
	}
	if got.Paid() != 3500 || got.Remaining() != 1500 {
		t.Errorf("paid=%d remaining=%d, want 3500/1500", got.Paid(), got.Remaining())
	}

	if err := store.AddPayment(ctx, "nope", &models.Payment{Amount: 1}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown settlement, got %v", err)
	}

	list, err := store.ListSettlementsByTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to list settlements: %v", err)
	}
	if len(list) != 1 || len(list[0].Payments) != 2 {
		t.Errorf("expected 1 settlement with 2 payments, got %+v", list)
	}

	if err := store.DeleteSettlement(ctx, settlement.ID); err != nil {
		t.Fatalf("failed to delete settlement: %v", err)
	}
	if _, err := store.GetSettlement(ctx, settlement.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected settlement to be gone, got %v", err)
	}
}

func TestChoiceVoting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	choice := &models.Choice{
		TripID: trip.ID,
		Title:  "Saturday dinner",
		Options: []models.ChoiceOption{
			{Label: "Pizza"},
			{Label: "Ramen"},
		},
	}
	if err := store.CreateChoice(ctx, choice); err != nil {
		t.Fatalf("failed to create choice: %v", err)
	}
	if len(choice.Options) != 2 || choice.Options[0].ID == "" {
		t.Fatalf("expected option IDs to be populated: %+v", choice.Options)
	}

	pizza, ramen := choice.Options[0].ID, choice.Options[1].ID
	votes := []models.Vote{
		{ChoiceID: choice.ID, MemberID: members[0].ID, OptionID: pizza},
		{ChoiceID: choice.ID, MemberID: members[1].ID, OptionID: pizza},
		{ChoiceID: choice.ID, MemberID: members[2].ID, OptionID: ramen},
	}
	for i := range votes {
		if err := store.CastVote(ctx, &votes[i]); err != nil {
			t.Fatalf("failed to cast vote: %v", err)
		}
	}

	// Re-voting replaces the member's earlier pick.
	if err := store.CastVote(ctx, &models.Vote{ChoiceID: choice.ID, MemberID: members[1].ID, OptionID: ramen}); err != nil {
		t.Fatalf("failed to re-vote: %v", err)
	}

	got, err := store.GetChoice(ctx, choice.ID)
	if err != nil {
		t.Fatalf("failed to get choice: %v", err)
	}
	tally := map[string]int{}
	for _, o := range got.Options {
		tally[o.Label] = o.Votes
	}
	if tally["Pizza"] != 1 || tally["Ramen"] != 2 {
		t.Errorf("tally = %v, want Pizza:1 Ramen:2", tally)
	}

	// Votes are bound to the choice's own options.
	err = store.CastVote(ctx, &models.Vote{ChoiceID: choice.ID, MemberID: members[0].ID, OptionID: "nope"})
	if err == nil {
		t.Error("expected error voting for a foreign option")
	}
}

func TestKitItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, members := seedTrip(t, store)

	item := &models.KitItem{TripID: trip.ID, Name: "Camp stove", Quantity: 1}
	if err := store.CreateKitItem(ctx, item); err != nil {
		t.Fatalf("failed to create kit item: %v", err)
	}

	item.AssigneeID = members[1].ID
	item.Packed = true
	if err := store.UpdateKitItem(ctx, item); err != nil {
		t.Fatalf("failed to update kit item: %v", err)
	}

	items, err := store.ListKitItems(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to list kit items: %v", err)
	}
	if len(items) != 1 || !items[0].Packed || items[0].AssigneeID != members[1].ID {
		t.Errorf("unexpected kit list: %+v", items)
	}

	if err := store.DeleteKitItem(ctx, item.ID); err != nil {
		t.Fatalf("failed to delete kit item: %v", err)
	}
	if _, err := store.GetKitItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected kit item to be gone, got %v", err)
	}
}

func TestContacts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, _ := seedTrip(t, store)

	contact := &models.Contact{TripID: trip.ID, Name: "Rifugio host", Phone: "+39 000 000", Note: "speaks English"}
	if err := store.CreateContact(ctx, contact); err != nil {
		t.Fatalf("failed to create contact: %v", err)
	}

	contacts, err := store.ListContacts(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to list contacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Rifugio host" {
		t.Errorf("unexpected contacts: %+v", contacts)
	}

	// A delete addressed through the wrong trip must not resolve.
	otherTrip := &models.Trip{OwnerID: "someone", Name: "Other", BaseCurrency: "EUR"}
	if err := store.CreateTrip(ctx, otherTrip); err != nil {
		t.Fatalf("failed to create other trip: %v", err)
	}
	if err := store.DeleteContact(ctx, otherTrip.ID, contact.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for cross-trip delete, got %v", err)
	}

	if err := store.DeleteContact(ctx, trip.ID, contact.ID); err != nil {
		t.Fatalf("failed to delete contact: %v", err)
	}
	contacts, err = store.ListContacts(ctx, trip.ID)
	if err != nil {
		t.Fatalf("failed to re-list contacts: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("expected no contacts, got %+v", contacts)
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("bob@example.com", "Bob", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("failed to get user by email: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("unexpected user: %+v", got)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestUpdateUserStampsUpdatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("bob@example.com", "Bob", "hash")
	user.CreatedAt = 1000
	user.UpdatedAt = 1000
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	user.DisplayName = "Robert"
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("failed to update user: %v", err)
	}

	got, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if got.DisplayName != "Robert" {
		t.Errorf("display name: want Robert, got %s", got.DisplayName)
	}
	if got.UpdatedAt <= 1000 {
		t.Errorf("expected UpdatedAt to advance past 1000, got %d", got.UpdatedAt)
	}
	if got.CreatedAt != 1000 {
		t.Errorf("CreatedAt must not change, got %d", got.CreatedAt)
	}

	if err := store.UpdateUser(ctx, models.NewUser("ghost@example.com", "Ghost", "hash")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}
