package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

func TestContactsScopedToTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trips := NewTripService(f.store)

	contact, err := trips.AddContact(ctx, f.ownerID, f.trip.ID, &models.Contact{Name: "Rifugio host"})
	require.NoError(t, err)

	// A member of an unrelated trip cannot reach the contact through
	// their own trip.
	mallory := models.NewUser("mallory@example.com", "Mallory", "hash")
	require.NoError(t, f.store.CreateUser(ctx, mallory))
	malloryTrip, err := trips.CreateTrip(ctx, mallory.ID, CreateTripParams{Name: "Elsewhere", BaseCurrency: "EUR"})
	require.NoError(t, err)

	err = trips.DeleteContact(ctx, mallory.ID, malloryTrip.ID, contact.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	contacts, err := trips.ListContacts(ctx, f.ownerID, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	// The owning trip can.
	require.NoError(t, trips.DeleteContact(ctx, f.ownerID, f.trip.ID, contact.ID))
	contacts, err = trips.ListContacts(ctx, f.ownerID, f.trip.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestDeleteTripOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trips := NewTripService(f.store)

	bob := models.NewUser("bob@example.com", "Bob", "hash")
	require.NoError(t, f.store.CreateUser(ctx, bob))

	member := f.members["Bob"]
	member.UserID = bob.ID
	require.NoError(t, f.store.UpdateMember(ctx, member))

	// Bob is on the roster but does not own the trip.
	err := trips.DeleteTrip(ctx, bob.ID, f.trip.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, trips.DeleteTrip(ctx, f.ownerID, f.trip.ID))
}
