package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/model"
	"github.com/fintrack/fintrack/internal/repository"
)

type fakeIncomeStore struct {
	incomes map[int64]*model.Income
	nextID  int64
}

func newFakeIncomeStore() *fakeIncomeStore {
	return &fakeIncomeStore{incomes: make(map[int64]*model.Income), nextID: 1}
}

func (f *fakeIncomeStore) CreateIncome(ctx context.Context, in *model.Income) error {
	clone := *in
	clone.ID = f.nextID
	f.nextID++
	f.incomes[clone.ID] = &clone
	in.ID = clone.ID
	return nil
}

func (f *fakeIncomeStore) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	in, ok := f.incomes[id]
	if !ok {
		return nil, repository.ErrIncomeNotFound
	}
	clone := *in
	return &clone, nil
}

func (f *fakeIncomeStore) ListIncomes(ctx context.Context, userID int64) ([]*model.Income, error) {
	var out []*model.Income
	for _, in := range f.incomes {
		if in.UserID == userID {
			clone := *in
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeIncomeStore) UpdateIncome(ctx context.Context, in *model.Income) error {
	stored, ok := f.incomes[in.ID]
	if !ok || stored.UserID != in.UserID {
		return repository.ErrIncomeNotFound
	}
	clone := *in
	f.incomes[in.ID] = &clone
	return nil
}

func (f *fakeIncomeStore) DeleteIncome(ctx context.Context, id, userID int64) error {
	stored, ok := f.incomes[id]
	if !ok || stored.UserID != userID {
		return repository.ErrIncomeNotFound
	}
	delete(f.incomes, id)
	return nil
}

func TestIncomeService_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := newFakeIncomeStore()
	svc := NewIncomeService(store)
	source := "salary"

	created, err := svc.Create(context.Background(), 3, IncomeInput{
		Amount: "1500.00",
		Source: &source,
		Date:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.UserID != 3 {
		t.Errorf("income owner = %d, want caller id 3", created.UserID)
	}

	got, err := svc.Get(context.Background(), created.ID, 3)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Source == nil || *got.Source != "salary" {
		t.Error("source was not persisted")
	}
}

func TestIncomeService_OwnershipCollapsesToNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeIncomeStore()
	svc := NewIncomeService(store)

	created, err := svc.Create(context.Background(), 1, IncomeInput{
		Amount: "200.00",
		Date:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID, 2); !errors.Is(err, ErrIncomeNotFound) {
		t.Errorf("cross-user Get = %v, want ErrIncomeNotFound", err)
	}
	if err := svc.Delete(context.Background(), created.ID, 2); !errors.Is(err, ErrIncomeNotFound) {
		t.Errorf("cross-user Delete = %v, want ErrIncomeNotFound", err)
	}
	if _, ok := store.incomes[created.ID]; !ok {
		t.Error("cross-user Delete removed the row")
	}
}
