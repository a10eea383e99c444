// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/roamly/roamly/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users. UpdateUser refreshes UpdatedAt.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Trips. CreateTrip populates ID and CreatedAt.
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	// ListTripsByUser returns trips the user owns or is a member of,
	// newest first.
	ListTripsByUser(ctx context.Context, userID string) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	DeleteTrip(ctx context.Context, tripID string) error

	// Members
	AddMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	ListMembers(ctx context.Context, tripID string) ([]*models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	RemoveMember(ctx context.Context, memberID string) error

	// Expenses. Create and Update write the expense and its shares in one
	// transaction. Reads return the shares attached. Soft-deleted expenses
	// never appear in listings.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	SoftDeleteExpense(ctx context.Context, expenseID string) error

	// Settlements. AddPayment re-reads the settlement inside a transaction
	// so concurrent partial payments never double-count.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByTrip(ctx context.Context, tripID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error
	AddPayment(ctx context.Context, settlementID string, payment *models.Payment) error

	// Choices
	CreateChoice(ctx context.Context, choice *models.Choice) error
	GetChoice(ctx context.Context, choiceID string) (*models.Choice, error)
	ListChoicesByTrip(ctx context.Context, tripID string) ([]*models.Choice, error)
	CastVote(ctx context.Context, vote *models.Vote) error
	DeleteChoice(ctx context.Context, choiceID string) error

	// Kit list
	CreateKitItem(ctx context.Context, item *models.KitItem) error
	GetKitItem(ctx context.Context, itemID string) (*models.KitItem, error)
	ListKitItems(ctx context.Context, tripID string) ([]*models.KitItem, error)
	UpdateKitItem(ctx context.Context, item *models.KitItem) error
	DeleteKitItem(ctx context.Context, itemID string) error

	// Contacts. DeleteContact is trip-scoped: a contact ID belonging to a
	// different trip reports ErrNotFound.
	CreateContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context, tripID string) ([]*models.Contact, error)
	DeleteContact(ctx context.Context, tripID, contactID string) error

	// Close releases any resources held by the store.
	Close() error
}
