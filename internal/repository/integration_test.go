//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/repository"
	"github.com/fintrack/fintrack/internal/testutil"
)

// setupRepo connects to the test database, serializes against other DB
// tests, and resets the schema. Skips unless TEST_DATABASE_URL is set.
func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquiring db lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("releasing db lock: %v", err)
		}
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("resetting schema: %v", err)
	}

	return repo
}

func TestIntegration_CreateUser_DuplicateUsername(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "alice")); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	_, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "alice"))
	if !errors.Is(err, repository.ErrUsernameExists) {
		t.Errorf("duplicate CreateUser = %v, want ErrUsernameExists", err)
	}
}

func TestIntegration_CreateUser_ConcurrentSameUsername(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.CreateUser(ctx, testutil.NewTestUser(t, "bob"))
		}(i)
	}
	wg.Wait()

	var created, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrUsernameExists):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("%d inserts succeeded, want exactly 1", created)
	}
	if duplicates != attempts-1 {
		t.Errorf("%d duplicate errors, want %d", duplicates, attempts-1)
	}
}

func TestIntegration_ExpenseOwnershipScoping(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	aliceID, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "alice"))
	if err != nil {
		t.Fatalf("creating alice: %v", err)
	}
	bobID, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "bob"))
	if err != nil {
		t.Fatalf("creating bob: %v", err)
	}

	expense := testutil.NewTestExpense(t, aliceID)
	if err := repo.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("creating expense: %v", err)
	}

	// Owner-scoped writes must not touch another user's row.
	stolen := *expense
	stolen.UserID = bobID
	stolen.Amount = "99.99"
	if err := repo.UpdateExpense(ctx, &stolen); !errors.Is(err, repository.ErrExpenseNotFound) {
		t.Errorf("cross-user UpdateExpense = %v, want ErrExpenseNotFound", err)
	}
	if err := repo.DeleteExpense(ctx, expense.ID, bobID); !errors.Is(err, repository.ErrExpenseNotFound) {
		t.Errorf("cross-user DeleteExpense = %v, want ErrExpenseNotFound", err)
	}

	got, err := repo.GetExpenseByID(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpenseByID failed: %v", err)
	}
	if got.Amount != expense.Amount || got.UserID != aliceID {
		t.Errorf("row changed after cross-user writes: %+v", got)
	}

	bobList, err := repo.ListExpenses(ctx, bobID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(bobList) != 0 {
		t.Errorf("ListExpenses leaked %d rows to another user", len(bobList))
	}
}

func TestIntegration_ExpenseUnknownCategory(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	userID, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "carol"))
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	bogus := int64(424242)
	expense := testutil.NewTestExpense(t, userID)
	expense.CategoryID = &bogus

	if err := repo.CreateExpense(ctx, expense); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Errorf("CreateExpense with unknown category = %v, want ErrCategoryNotFound", err)
	}
}

func TestIntegration_ListExpensesOrderedByDateDesc(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	userID, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "dave"))
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{2, 0, 1} {
		e := testutil.NewTestExpense(t, userID)
		e.Date = base.AddDate(0, 0, offset)
		if err := repo.CreateExpense(ctx, e); err != nil {
			t.Fatalf("creating expense: %v", err)
		}
	}

	list, err := repo.ListExpenses(ctx, userID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListExpenses returned %d rows, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Errorf("expenses not ordered by date desc: %v before %v", list[i-1].Date, list[i].Date)
		}
	}
}

func TestIntegration_IncomeCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	userID, err := repo.CreateUser(ctx, testutil.NewTestUser(t, "erin"))
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	income := testutil.NewTestIncome(t, userID)
	if err := repo.CreateIncome(ctx, income); err != nil {
		t.Fatalf("creating income: %v", err)
	}

	income.Amount = "1750.00"
	if err := repo.UpdateIncome(ctx, income); err != nil {
		t.Fatalf("updating income: %v", err)
	}

	got, err := repo.GetIncomeByID(ctx, income.ID)
	if err != nil {
		t.Fatalf("GetIncomeByID failed: %v", err)
	}
	if got.Amount != "1750.00" {
		t.Errorf("income amount = %q after update, want 1750.00", got.Amount)
	}

	if err := repo.DeleteIncome(ctx, income.ID, userID); err != nil {
		t.Fatalf("deleting income: %v", err)
	}
	if _, err := repo.GetIncomeByID(ctx, income.ID); !errors.Is(err, repository.ErrIncomeNotFound) {
		t.Errorf("GetIncomeByID after delete = %v, want ErrIncomeNotFound", err)
	}
}
