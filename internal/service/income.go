package service

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/fintrack/internal/model"
	"github.com/fintrack/fintrack/internal/repository"
)

// ErrIncomeNotFound covers both absence and ownership mismatch.
var ErrIncomeNotFound = errors.New("income not found")

// IncomeStore is the persistence contract for income records.
type IncomeStore interface {
	CreateIncome(ctx context.Context, in *model.Income) error
	GetIncomeByID(ctx context.Context, id int64) (*model.Income, error)
	ListIncomes(ctx context.Context, userID int64) ([]*model.Income, error)
	UpdateIncome(ctx context.Context, in *model.Income) error
	DeleteIncome(ctx context.Context, id, userID int64) error
}

// IncomeService handles income business logic and ownership scoping.
type IncomeService struct {
	store IncomeStore
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(store IncomeStore) *IncomeService {
	return &IncomeService{store: store}
}

// IncomeInput defines the caller-supplied fields of an income record.
type IncomeInput struct {
	Amount      string
	Source      *string
	Description *string
	Date        time.Time
}

// Create records a new income entry owned by the caller.
func (s *IncomeService) Create(ctx context.Context, callerID int64, input IncomeInput) (*model.Income, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	in := &model.Income{
		UserID:      callerID,
		Amount:      input.Amount,
		Source:      input.Source,
		Description: input.Description,
		Date:        input.Date,
	}

	if err := s.store.CreateIncome(ctx, in); err != nil {
		return nil, err
	}

	return in, nil
}

// List returns the caller's income records.
func (s *IncomeService) List(ctx context.Context, callerID int64) ([]*model.Income, error) {
	return s.store.ListIncomes(ctx, callerID)
}

// Get returns a single income record if and only if the caller owns it.
func (s *IncomeService) Get(ctx context.Context, id, callerID int64) (*model.Income, error) {
	in, err := s.store.GetIncomeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIncomeNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, err
	}

	if err := CheckOwnership(in.UserID, callerID); err != nil {
		return nil, ErrIncomeNotFound
	}

	return in, nil
}

// Update replaces the mutable fields of an income record the caller owns.
func (s *IncomeService) Update(ctx context.Context, id, callerID int64, input IncomeInput) (*model.Income, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	existing.Amount = input.Amount
	existing.Source = input.Source
	existing.Description = input.Description
	existing.Date = input.Date

	if err := s.store.UpdateIncome(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrIncomeNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, err
	}

	return existing, nil
}

// Delete removes an income record the caller owns.
func (s *IncomeService) Delete(ctx context.Context, id, callerID int64) error {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.store.DeleteIncome(ctx, id, callerID); err != nil {
		if errors.Is(err, repository.ErrIncomeNotFound) {
			return ErrIncomeNotFound
		}
		return err
	}

	return nil
}
