package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/model"
)

// ErrCategoryExists indicates a duplicate category name.
var ErrCategoryExists = errors.New("category already exists")

// ListCategories returns all categories ordered by id.
func (r *Repository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// CreateCategory inserts a category and returns its store-assigned id.
func (r *Repository) CreateCategory(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrCategoryExists
		}
		return 0, fmt.Errorf("failed to create category: %w", err)
	}

	return id, nil
}
