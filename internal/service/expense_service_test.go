package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/model"
	"spendlog/internal/repository"
)

// fakeExpenseRepo is an in-memory repository that mirrors the SQL aggregate
// semantics, so service-level properties can be exercised without a database.
type fakeExpenseRepo struct {
	nextID   uint
	expenses []model.Expense
}

var _ repository.ExpenseRepository = (*fakeExpenseRepo)(nil)

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{nextID: 1}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	expense.ID = f.nextID
	f.nextID++
	f.expenses = append(f.expenses, *expense)
	return nil
}

func (f *fakeExpenseRepo) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			e := f.expenses[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExpenseRepo) ListByUser(ctx context.Context, userID uint) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range f.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeExpenseRepo) TotalByUser(ctx context.Context, userID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.expenses {
		if e.UserID == userID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (f *fakeExpenseRepo) SumByCategory(ctx context.Context, userID uint) ([]model.CategoryTotal, error) {
	sums := map[string]decimal.Decimal{}
	for _, e := range f.expenses {
		if e.UserID == userID {
			sums[e.Category] = sums[e.Category].Add(e.Amount)
		}
	}
	var rows []model.CategoryTotal
	for category, amount := range sums {
		rows = append(rows, model.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

func (f *fakeExpenseRepo) SumByMonth(ctx context.Context, userID uint) ([]model.MonthTotal, error) {
	sums := map[string]decimal.Decimal{}
	for _, e := range f.expenses {
		if e.UserID == userID {
			month := e.Date.Format("2006-01")
			sums[month] = sums[month].Add(e.Amount)
		}
	}
	var rows []model.MonthTotal
	for month, amount := range sums {
		rows = append(rows, model.MonthTotal{Month: month, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

func TestExpenseService_AddValidation(t *testing.T) {
	tests := []struct {
		name          string
		input         AddExpenseInput
		expectedError error
	}{
		{
			name:          "missing title",
			input:         AddExpenseInput{Title: " ", Amount: "4.50", Category: "Food"},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "missing category",
			input:         AddExpenseInput{Title: "Coffee", Amount: "4.50", Category: ""},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "missing amount",
			input:         AddExpenseInput{Title: "Coffee", Amount: "", Category: "Food"},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "non-numeric amount",
			input:         AddExpenseInput{Title: "Coffee", Amount: "four euros", Category: "Food"},
			expectedError: apperrors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeExpenseRepo()
			svc := NewExpenseService(repo, nil)

			expense, err := svc.Add(context.Background(), &model.User{ID: 1}, tt.input)

			assert.Equal(t, tt.expectedError, err)
			assert.Nil(t, expense)
			assert.Empty(t, repo.expenses)
		})
	}
}

func TestExpenseService_AddDateFallback(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := NewExpenseService(repo, nil)

	expense, err := svc.Add(context.Background(), &model.User{ID: 1}, AddExpenseInput{
		Title:    "Coffee",
		Amount:   "4.50",
		Category: "Food",
		Date:     "not-a-date",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.True(t, expense.Date.Equal(today), "expected %v, got %v", today, expense.Date)
}

func TestExpenseService_Aggregates(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := NewExpenseService(repo, nil)
	alice := &model.User{ID: 1, Username: "alice"}

	ctx := context.Background()
	_, err := svc.Add(ctx, alice, AddExpenseInput{Title: "Coffee", Amount: "4.50", Category: "Food", Date: "2024-01-05"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, alice, AddExpenseInput{Title: "Bus", Amount: "2.00", Category: "Transport", Date: "2024-01-10"})
	require.NoError(t, err)

	expenses, total, err := svc.Overview(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "6.50", total.StringFixed(2))
	require.Len(t, expenses, 2)
	// Ordered by date descending
	assert.Equal(t, "Bus", expenses[0].Title)
	assert.Equal(t, "Coffee", expenses[1].Title)

	summary, err := svc.Summary(ctx, alice)
	require.NoError(t, err)

	require.Len(t, summary.Monthly, 1)
	assert.Equal(t, "2024-01", summary.Monthly[0].Month)
	assert.Equal(t, "6.50", summary.Monthly[0].Amount.StringFixed(2))

	require.Len(t, summary.ByCategory, 2)
	byCategory := map[string]string{}
	categorySum := decimal.Zero
	for _, row := range summary.ByCategory {
		byCategory[row.Category] = row.Amount.StringFixed(2)
		categorySum = categorySum.Add(row.Amount)
	}
	assert.Equal(t, "4.50", byCategory["Food"])
	assert.Equal(t, "2.00", byCategory["Transport"])
	// Category sums add up to the overall total
	assert.True(t, categorySum.Equal(total))
}

func TestExpenseService_Delete(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := NewExpenseService(repo, nil)
	alice := &model.User{ID: 1, Username: "alice"}
	mallory := &model.User{ID: 2, Username: "mallory"}

	ctx := context.Background()
	coffee, err := svc.Add(ctx, alice, AddExpenseInput{Title: "Coffee", Amount: "4.50", Category: "Food", Date: "2024-01-05"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, alice, AddExpenseInput{Title: "Bus", Amount: "2.00", Category: "Transport", Date: "2024-01-10"})
	require.NoError(t, err)

	t.Run("unknown expense", func(t *testing.T) {
		assert.Equal(t, apperrors.ErrExpenseNotFound, svc.Delete(ctx, 999, alice))
	})

	t.Run("foreign expense is untouched", func(t *testing.T) {
		assert.Equal(t, apperrors.ErrNotOwner, svc.Delete(ctx, coffee.ID, mallory))

		still, err := repo.FindByID(ctx, coffee.ID)
		require.NoError(t, err)
		assert.Equal(t, "Coffee", still.Title)
	})

	t.Run("owner delete shrinks total by the deleted amount", func(t *testing.T) {
		before, err := repo.TotalByUser(ctx, alice.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, coffee.ID, alice))

		after, err := repo.TotalByUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, before.Sub(after).Equal(coffee.Amount))
		assert.Equal(t, "2.00", after.StringFixed(2))

		_, err = repo.FindByID(ctx, coffee.ID)
		assert.Equal(t, gorm.ErrRecordNotFound, err)
	})
}
