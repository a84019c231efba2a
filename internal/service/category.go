package service

import (
	"context"
	"errors"

	"github.com/fintrack/fintrack/internal/model"
	"github.com/fintrack/fintrack/internal/repository"
)

// Category service errors.
var (
	ErrInvalidCategoryName = errors.New("invalid category name")
	ErrCategoryExists      = errors.New("category already exists")
)

const maxCategoryNameLength = 100

// CategoryStore is the persistence contract for categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, name string) (int64, error)
}

// CategoryService handles the shared category list.
// Categories are global: they carry no owner and need no guard.
type CategoryService struct {
	store CategoryStore
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.store.ListCategories(ctx)
}

// Create adds a new category and returns its id.
func (s *CategoryService) Create(ctx context.Context, name string) (int64, error) {
	if name == "" || len(name) > maxCategoryNameLength {
		return 0, ErrInvalidCategoryName
	}

	id, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return 0, ErrCategoryExists
		}
		return 0, err
	}

	return id, nil
}
