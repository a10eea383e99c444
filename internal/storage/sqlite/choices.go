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

// CreateChoice persists a choice and its options in one transaction.
func (s *SQLiteStore) CreateChoice(ctx context.Context, choice *models.Choice) error {
	if choice.ID == "" {
		choice.ID = uuid.New().String()
	}
	if choice.CreatedAt == 0 {
		choice.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO choices (id, trip_id, title, created_at) VALUES (?, ?, ?, ?)",
		choice.ID, choice.TripID, choice.Title, choice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert choice: %w", err)
	}

	for i := range choice.Options {
		opt := &choice.Options[i]
		if opt.ID == "" {
			opt.ID = uuid.New().String()
		}
		opt.ChoiceID = choice.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO choice_options (id, choice_id, label) VALUES (?, ?, ?)",
			opt.ID, opt.ChoiceID, opt.Label,
		)
		if err != nil {
			return fmt.Errorf("failed to insert choice option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetChoice retrieves a choice with options and vote tallies.
func (s *SQLiteStore) GetChoice(ctx context.Context, choiceID string) (*models.Choice, error) {
	choice := &models.Choice{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, title, created_at FROM choices WHERE id = ?",
		choiceID,
	).Scan(&choice.ID, &choice.TripID, &choice.Title, &choice.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("choice %s: %w", choiceID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get choice: %w", err)
	}

	if err := s.attachOptions(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// ListChoicesByTrip retrieves all choices of a trip with options and
// tallies, newest first.
func (s *SQLiteStore) ListChoicesByTrip(ctx context.Context, tripID string) ([]*models.Choice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, trip_id, title, created_at FROM choices WHERE trip_id = ? ORDER BY created_at DESC, id",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list choices: %w", err)
	}
	defer rows.Close()

	var choices []*models.Choice
	for rows.Next() {
		choice := &models.Choice{}
		if err := rows.Scan(&choice.ID, &choice.TripID, &choice.Title, &choice.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, choice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate choices: %w", err)
	}

	for _, choice := range choices {
		if err := s.attachOptions(ctx, choice); err != nil {
			return nil, err
		}
	}
	return choices, nil
}

// CastVote records a member's pick, replacing any previous one for the
// same choice.
func (s *SQLiteStore) CastVote(ctx context.Context, vote *models.Vote) error {
	// The option must belong to the choice being voted on.
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM choice_options WHERE id = ? AND choice_id = ?",
		vote.OptionID, vote.ChoiceID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("option %s of choice %s: %w", vote.OptionID, vote.ChoiceID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check option: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO choice_votes (choice_id, member_id, option_id) VALUES (?, ?, ?)
		 ON CONFLICT(choice_id, member_id) DO UPDATE SET option_id = excluded.option_id`,
		vote.ChoiceID, vote.MemberID, vote.OptionID,
	)
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	return nil
}

// DeleteChoice removes a choice, its options and votes.
func (s *SQLiteStore) DeleteChoice(ctx context.Context, choiceID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM choices WHERE id = ?", choiceID)
	if err != nil {
		return fmt.Errorf("failed to delete choice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("choice %s: %w", choiceID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) attachOptions(ctx context.Context, choice *models.Choice) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.id, o.choice_id, o.label, COUNT(v.option_id)
		 FROM choice_options o
		 LEFT JOIN choice_votes v ON v.option_id = o.id
		 WHERE o.choice_id = ?
		 GROUP BY o.id, o.choice_id, o.label
		 ORDER BY o.id`,
		choice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.ChoiceOption
		if err := rows.Scan(&opt.ID, &opt.ChoiceID, &opt.Label, &opt.Votes); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		choice.Options = append(choice.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate options: %w", err)
	}
	return nil
}
