package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// CreateExpense persists an expense and its shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Status == "" {
		expense.Status = models.ExpenseOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, payer_id, description, category, amount, currency,
		                       fx_rate, normalized_amount, date, status, deleted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		expense.ID, expense.TripID, expense.PayerID, expense.Description, expense.Category,
		expense.Amount, expense.Currency, expense.FxRate.String(), expense.NormalizedAmount,
		expense.Date, string(expense.Status), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertShares(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense rewrites the expense row and replaces its shares.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET payer_id = ?, description = ?, category = ?, amount = ?, currency = ?,
		                     fx_rate = ?, normalized_amount = ?, date = ?, status = ?
		 WHERE id = ? AND deleted = 0`,
		expense.PayerID, expense.Description, expense.Category, expense.Amount, expense.Currency,
		expense.FxRate.String(), expense.NormalizedAmount, expense.Date, string(expense.Status),
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear shares: %w", err)
	}
	if err := insertShares(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertShares(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.ExpenseID = expense.ID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, member_id, amount, normalized_amount, method)
			 VALUES (?, ?, ?, ?, ?)`,
			share.ExpenseID, share.MemberID, share.Amount, share.NormalizedAmount, string(share.Method),
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense with its shares. Soft-deleted expenses
// are reported as not found.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, payer_id, description, category, amount, currency,
		        fx_rate, normalized_amount, date, status, deleted, created_at
		 FROM expenses WHERE id = ? AND deleted = 0`,
		expenseID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.attachShares(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByTrip retrieves all live expenses of a trip with shares
// attached, newest spend date first.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, payer_id, description, category, amount, currency,
		        fx_rate, normalized_amount, date, status, deleted, created_at
		 FROM expenses WHERE trip_id = ? AND deleted = 0 ORDER BY date DESC, created_at DESC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.attachShares(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// SoftDeleteExpense marks an expense deleted without removing its history.
func (s *SQLiteStore) SoftDeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET deleted = 1 WHERE id = ? AND deleted = 0", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var fxRate, status string
	var deleted int

	err := row.Scan(&expense.ID, &expense.TripID, &expense.PayerID, &expense.Description,
		&expense.Category, &expense.Amount, &expense.Currency, &fxRate,
		&expense.NormalizedAmount, &expense.Date, &status, &deleted, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(fxRate)
	if err != nil {
		return nil, fmt.Errorf("stored fx rate %q is not a decimal: %w", fxRate, err)
	}
	expense.FxRate = rate
	expense.Status = models.ExpenseStatus(status)
	expense.Deleted = deleted != 0
	return expense, nil
}

func (s *SQLiteStore) attachShares(ctx context.Context, expenses []*models.Expense) error {
	byID := make(map[string]*models.Expense, len(expenses))
	for _, e := range expenses {
		byID[e.ID] = e
	}

	for _, expense := range expenses {
		rows, err := s.db.QueryContext(ctx,
			`SELECT expense_id, member_id, amount, normalized_amount, method
			 FROM expense_shares WHERE expense_id = ? ORDER BY member_id`,
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get shares: %w", err)
		}

		for rows.Next() {
			var share models.ShareAssignment
			var method string
			if err := rows.Scan(&share.ExpenseID, &share.MemberID, &share.Amount, &share.NormalizedAmount, &method); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan share: %w", err)
			}
			share.Method = models.SplitMethod(method)
			byID[share.ExpenseID].Shares = append(byID[share.ExpenseID].Shares, share)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate shares: %w", err)
		}
	}
	return nil
}
