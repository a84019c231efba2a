package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fintrack/fintrack/internal/model"
)

// Common errors for expense repository operations.
var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CreateExpense inserts a new expense and fills in the store-assigned
// id and timestamps.
func (r *Repository) CreateExpense(ctx context.Context, e *model.Expense) error {
	query := `
		INSERT INTO expenses (user_id, category_id, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		e.UserID,
		e.CategoryID,
		e.Amount,
		e.Description,
		e.Date,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetExpenseByID retrieves an expense by id, regardless of owner.
// Callers must apply the ownership guard before exposing the row.
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error) {
	query := `
		SELECT id, user_id, category_id, amount, description, date, created_at, updated_at
		FROM expenses
		WHERE id = $1
	`

	e, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}

	return e, nil
}

// ListExpenses returns all expenses owned by the given user,
// newest date first.
func (r *Repository) ListExpenses(ctx context.Context, userID int64) ([]*model.Expense, error) {
	query := `
		SELECT id, user_id, category_id, amount, description, date, created_at, updated_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// UpdateExpense updates an expense's mutable fields. The WHERE clause is
// scoped to both id and owner so a cross-user update cannot match a row
// even if the service-level guard were bypassed.
func (r *Repository) UpdateExpense(ctx context.Context, e *model.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $3, amount = $4, description = $5, date = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.CategoryID,
		e.Amount,
		e.Description,
		e.Date,
	).Scan(&e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExpenseNotFound
		}
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// DeleteExpense deletes an expense owned by the given user.
func (r *Repository) DeleteExpense(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM expenses
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// scanExpense scans a single expense row.
func scanExpense(row pgx.Row) (*model.Expense, error) {
	var e model.Expense
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.CategoryID,
		&e.Amount,
		&e.Description,
		&e.Date,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
