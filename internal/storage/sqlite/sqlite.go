// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trips (id, owner_id, name, start_date, end_date, base_currency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.OwnerID, trip.Name, trip.StartDate, trip.EndDate, trip.BaseCurrency, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, start_date, end_date, base_currency, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	).Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.StartDate, &trip.EndDate, &trip.BaseCurrency, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// ListTripsByUser retrieves trips the user owns or participates in.
func (s *SQLiteStore) ListTripsByUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT t.id, t.owner_id, t.name, t.start_date, t.end_date, t.base_currency, t.created_at
		 FROM trips t
		 LEFT JOIN members m ON m.trip_id = t.id
		 WHERE t.owner_id = ? OR m.user_id = ?
		 ORDER BY t.created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip := &models.Trip{}
		if err := rows.Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.StartDate, &trip.EndDate, &trip.BaseCurrency, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return trips, nil
}

// UpdateTrip updates an existing trip's mutable fields.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trips SET name = ?, start_date = ?, end_date = ?, base_currency = ? WHERE id = ?`,
		trip.Name, trip.StartDate, trip.EndDate, trip.BaseCurrency, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteTrip removes a trip and, via cascades, everything it owns.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

// AddMember adds a member to a trip.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.RSVP == "" {
		member.RSVP = models.RSVPMaybe
	}

	var userID interface{}
	if member.UserID != "" {
		userID = member.UserID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, trip_id, user_id, name, rsvp, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.TripID, userID, member.Name, string(member.RSVP), member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	member := &models.Member{}
	var userID sql.NullString
	var rsvp string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, user_id, name, rsvp, created_at FROM members WHERE id = ?`,
		memberID,
	).Scan(&member.ID, &member.TripID, &userID, &member.Name, &rsvp, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if userID.Valid {
		member.UserID = userID.String
	}
	member.RSVP = models.RSVPStatus(rsvp)
	return member, nil
}

// ListMembers retrieves all members of a trip, ordered by join time.
func (s *SQLiteStore) ListMembers(ctx context.Context, tripID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, user_id, name, rsvp, created_at
		 FROM members WHERE trip_id = ? ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		var userID sql.NullString
		var rsvp string
		if err := rows.Scan(&member.ID, &member.TripID, &userID, &member.Name, &rsvp, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if userID.Valid {
			member.UserID = userID.String
		}
		member.RSVP = models.RSVPStatus(rsvp)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMember updates a member's name and RSVP.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE members SET name = ?, rsvp = ? WHERE id = ?`,
		member.Name, string(member.RSVP), member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s: %w", member.ID, storage.ErrNotFound)
	}
	return nil
}

// RemoveMember deletes a member from a trip.
func (s *SQLiteStore) RemoveMember(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	return nil
}
