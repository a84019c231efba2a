package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/model"
	"github.com/fintrack/fintrack/internal/repository"
)

// Resource service errors.
var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidAmount    = errors.New("amount must be a positive decimal with at most two fraction digits")
)

// amountRegex matches decimal money strings like "10", "10.5", "10.50".
var amountRegex = regexp.MustCompile(`^\d{1,10}(\.\d{1,2})?$`)

// validateAmount rejects malformed or non-positive amounts.
func validateAmount(amount string) error {
	if !amountRegex.MatchString(amount) {
		return ErrInvalidAmount
	}
	if strings.Trim(amount, "0.") == "" {
		return ErrInvalidAmount
	}
	return nil
}

// ExpenseStore is the persistence contract for expenses.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e *model.Expense) error
	GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error)
	ListExpenses(ctx context.Context, userID int64) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, e *model.Expense) error
	DeleteExpense(ctx context.Context, id, userID int64) error
}

// ExpenseService handles expense business logic and ownership scoping.
type ExpenseService struct {
	store ExpenseStore
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput defines the caller-supplied fields of an expense.
// The owner always comes from the authenticated identity, never from
// client input.
type ExpenseInput struct {
	CategoryID  *int64
	Amount      string
	Description *string
	Date        time.Time
}

// Create records a new expense owned by the caller.
func (s *ExpenseService) Create(ctx context.Context, callerID int64, input ExpenseInput) (*model.Expense, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	e := &model.Expense{
		UserID:      callerID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
	}

	if err := s.store.CreateExpense(ctx, e); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return e, nil
}

// List returns the caller's expenses.
func (s *ExpenseService) List(ctx context.Context, callerID int64) ([]*model.Expense, error) {
	return s.store.ListExpenses(ctx, callerID)
}

// Get returns a single expense if and only if the caller owns it.
// An ownership mismatch is indistinguishable from absence.
func (s *ExpenseService) Get(ctx context.Context, id, callerID int64) (*model.Expense, error) {
	e, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if err := CheckOwnership(e.UserID, callerID); err != nil {
		return nil, ErrExpenseNotFound
	}

	return e, nil
}

// Update replaces the mutable fields of an expense the caller owns.
func (s *ExpenseService) Update(ctx context.Context, id, callerID int64, input ExpenseInput) (*model.Expense, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	existing.CategoryID = input.CategoryID
	existing.Amount = input.Amount
	existing.Description = input.Description
	existing.Date = input.Date

	if err := s.store.UpdateExpense(ctx, existing); err != nil {
		switch {
		case errors.Is(err, repository.ErrExpenseNotFound):
			return nil, ErrExpenseNotFound
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		default:
			return nil, err
		}
	}

	return existing, nil
}

// Delete removes an expense the caller owns.
func (s *ExpenseService) Delete(ctx context.Context, id, callerID int64) error {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.store.DeleteExpense(ctx, id, callerID); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}

	return nil
}
