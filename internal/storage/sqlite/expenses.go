package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wanderlog/expenseclient/internal/storage"
)

const expenseColumns = "id, date, category, amount, payment_method, note, user_id, is_deleted, created_at, updated_at"

func (s *sqliteStorage) SeedFixtures(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for seeding: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Will be no-op if committed
	}()

	for _, e := range storage.FixtureExpenses() {
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO public_expenses (id, date, category, amount, payment_method, note, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID(), e.Date(), e.Category(), e.Amount(), e.PaymentMethod(), e.Note(), e.CreatedAt().Unix())
		if err != nil {
			return fmt.Errorf("failed to seed public expense: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO expenses (`+expenseColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			e.ID(), e.Date(), e.Category(), e.Amount(), e.PaymentMethod(), e.Note(),
			e.UserID(), e.CreatedAt().Unix(), e.UpdatedAt().Unix())
		if err != nil {
			return fmt.Errorf("failed to seed personal expense: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	return nil
}

func (s *sqliteStorage) CreateExpense(
	ctx context.Context,
	userID int64,
	input storage.ExpenseInput,
) (storage.Expense, error) {
	now := time.Now()

	// INTEGER PRIMARY KEY assigns max(id)+1, or 1 for an empty table.
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (date, category, amount, payment_method, note, user_id, is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		input.Date, input.Category, input.Amount, input.PaymentMethod, input.Note,
		userID, now.Unix(), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense id: %w", err)
	}

	return s.GetExpenseByID(ctx, id)
}

func (s *sqliteStorage) GetExpenseByID(ctx context.Context, id int64) (storage.Expense, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = ? AND is_deleted = 0
	`, id)

	return expenseFromRow(row.Scan)
}

func (s *sqliteStorage) UpdateExpense(
	ctx context.Context,
	id int64,
	update storage.ExpenseUpdate,
) (storage.Expense, error) {
	current, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := struct {
		date, category, payment, note string
		amount                        float64
	}{
		date:     coalesce(update.Date, current.Date()),
		category: coalesce(update.Category, current.Category()),
		payment:  coalesce(update.PaymentMethod, current.PaymentMethod()),
		note:     coalesce(update.Note, current.Note()),
		amount:   coalesce(update.Amount, current.Amount()),
	}

	// id, user_id and created_at are deliberately absent from the SET list.
	_, err = s.db.ExecContext(ctx, `
		UPDATE expenses
		SET date = ?, category = ?, amount = ?, payment_method = ?, note = ?, updated_at = ?
		WHERE id = ? AND is_deleted = 0`,
		merged.date, merged.category, merged.amount, merged.payment, merged.note,
		time.Now().Unix(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return s.GetExpenseByID(ctx, id)
}

func (s *sqliteStorage) DeleteExpense(ctx context.Context, id int64) (storage.Expense, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET is_deleted = 1, updated_at = ?
		WHERE id = ? AND is_deleted = 0`,
		time.Now().Unix(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return nil, &storage.NotFoundError{}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = ?
	`, id)

	return expenseFromRow(row.Scan)
}

func (s *sqliteStorage) GetExpensesByUser(ctx context.Context, userID int64) ([]storage.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE user_id = ? AND is_deleted = 0
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return expensesFromRows(rows)
}

func (s *sqliteStorage) PublicExpenses(ctx context.Context) ([]storage.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category, amount, payment_method, note, created_at
		FROM public_expenses
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query public expenses: %w", err)
	}
	defer rows.Close()

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	var expenses []storage.Expense
	for rows.Next() {
		var id int64
		var date, category, payment, note string
		var amount float64
		var createdAt int64

		if err = rows.Scan(&id, &date, &category, &amount, &payment, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan public expense: %w", err)
		}

		expenses = append(expenses, storage.NewExpense(
			id, date, category, payment, note, amount,
			0, false, time.Unix(createdAt, 0), time.Unix(createdAt, 0)))
	}

	return expenses, nil
}

func (s *sqliteStorage) CountExpenses(ctx context.Context) (int64, error) {
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses")

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

func expenseFromRow(scan func(dest ...any) error) (storage.Expense, error) {
	var id, userID, createdAt, updatedAt int64
	var date, category, payment, note string
	var amount float64
	var isDeleted int64

	err := scan(&id, &date, &category, &amount, &payment, &note, &userID, &isDeleted, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{}
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	return storage.NewExpense(
		id, date, category, payment, note, amount,
		userID, isDeleted != 0, time.Unix(createdAt, 0), time.Unix(updatedAt, 0)), nil
}

func expensesFromRows(rows *sql.Rows) ([]storage.Expense, error) {
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	var expenses []storage.Expense
	for rows.Next() {
		expense, err := expenseFromRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func coalesce[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
