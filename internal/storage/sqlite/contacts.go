package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// CreateContact adds a shared contact card to a trip.
func (s *SQLiteStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt == 0 {
		contact.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, trip_id, name, phone, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.TripID, contact.Name, contact.Phone, contact.Note, contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// ListContacts retrieves a trip's contacts alphabetically.
func (s *SQLiteStore) ListContacts(ctx context.Context, tripID string) ([]*models.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, name, phone, note, created_at
		 FROM contacts WHERE trip_id = ? ORDER BY name, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.TripID, &contact.Name, &contact.Phone, &contact.Note, &contact.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

// DeleteContact removes a contact card. The delete is scoped to the trip
// so a contact ID from another trip never resolves.
func (s *SQLiteStore) DeleteContact(ctx context.Context, tripID, contactID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ? AND trip_id = ?", contactID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contact %s: %w", contactID, storage.ErrNotFound)
	}
	return nil
}
