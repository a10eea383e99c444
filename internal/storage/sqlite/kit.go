package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// CreateKitItem adds an item to a trip's packing list.
func (s *SQLiteStore) CreateKitItem(ctx context.Context, item *models.KitItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	var assignee interface{}
	if item.AssigneeID != "" {
		assignee = item.AssigneeID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kit_items (id, trip_id, name, quantity, assignee_id, packed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.TripID, item.Name, item.Quantity, assignee, boolToInt(item.Packed), item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert kit item: %w", err)
	}
	return nil
}

// GetKitItem retrieves a kit item by ID.
func (s *SQLiteStore) GetKitItem(ctx context.Context, itemID string) (*models.KitItem, error) {
	item := &models.KitItem{}
	var assignee sql.NullString
	var packed int

	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, name, quantity, assignee_id, packed, created_at
		 FROM kit_items WHERE id = ?`,
		itemID,
	).Scan(&item.ID, &item.TripID, &item.Name, &item.Quantity, &assignee, &packed, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("kit item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kit item: %w", err)
	}

	if assignee.Valid {
		item.AssigneeID = assignee.String
	}
	item.Packed = packed != 0
	return item, nil
}

// ListKitItems retrieves a trip's packing list in insertion order.
func (s *SQLiteStore) ListKitItems(ctx context.Context, tripID string) ([]*models.KitItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, name, quantity, assignee_id, packed, created_at
		 FROM kit_items WHERE trip_id = ? ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list kit items: %w", err)
	}
	defer rows.Close()

	var items []*models.KitItem
	for rows.Next() {
		item := &models.KitItem{}
		var assignee sql.NullString
		var packed int
		if err := rows.Scan(&item.ID, &item.TripID, &item.Name, &item.Quantity, &assignee, &packed, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kit item: %w", err)
		}
		if assignee.Valid {
			item.AssigneeID = assignee.String
		}
		item.Packed = packed != 0
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kit items: %w", err)
	}
	return items, nil
}

// UpdateKitItem updates an item's name, quantity, assignee and packed flag.
func (s *SQLiteStore) UpdateKitItem(ctx context.Context, item *models.KitItem) error {
	var assignee interface{}
	if item.AssigneeID != "" {
		assignee = item.AssigneeID
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE kit_items SET name = ?, quantity = ?, assignee_id = ?, packed = ? WHERE id = ?`,
		item.Name, item.Quantity, assignee, boolToInt(item.Packed), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update kit item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("kit item %s: %w", item.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteKitItem removes an item from the packing list.
func (s *SQLiteStore) DeleteKitItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM kit_items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete kit item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("kit item %s: %w", itemID, storage.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
