package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fintrack/fintrack/internal/model"
)

// ErrIncomeNotFound indicates the income row does not exist for the caller.
var ErrIncomeNotFound = errors.New("income not found")

// CreateIncome inserts a new income record and fills in the
// store-assigned id and timestamps.
func (r *Repository) CreateIncome(ctx context.Context, in *model.Income) error {
	query := `
		INSERT INTO incomes (user_id, amount, source, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		in.UserID,
		in.Amount,
		in.Source,
		in.Description,
		in.Date,
	).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	return nil
}

// GetIncomeByID retrieves an income record by id, regardless of owner.
// Callers must apply the ownership guard before exposing the row.
func (r *Repository) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	query := `
		SELECT id, user_id, amount, source, description, date, created_at, updated_at
		FROM incomes
		WHERE id = $1
	`

	in, err := scanIncome(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income by ID: %w", err)
	}

	return in, nil
}

// ListIncomes returns all income records owned by the given user,
// newest date first.
func (r *Repository) ListIncomes(ctx context.Context, userID int64) ([]*model.Income, error) {
	query := `
		SELECT id, user_id, amount, source, description, date, created_at, updated_at
		FROM incomes
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*model.Income
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}

	return incomes, nil
}

// UpdateIncome updates an income record's mutable fields, scoped to
// both id and owner.
func (r *Repository) UpdateIncome(ctx context.Context, in *model.Income) error {
	query := `
		UPDATE incomes
		SET amount = $3, source = $4, description = $5, date = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		in.ID,
		in.UserID,
		in.Amount,
		in.Source,
		in.Description,
		in.Date,
	).Scan(&in.CreatedAt, &in.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrIncomeNotFound
		}
		return fmt.Errorf("failed to update income: %w", err)
	}

	return nil
}

// DeleteIncome deletes an income record owned by the given user.
func (r *Repository) DeleteIncome(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM incomes
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrIncomeNotFound
	}

	return nil
}

// scanIncome scans a single income row.
func scanIncome(row pgx.Row) (*model.Income, error) {
	var in model.Income
	err := row.Scan(
		&in.ID,
		&in.UserID,
		&in.Amount,
		&in.Source,
		&in.Description,
		&in.Date,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}
