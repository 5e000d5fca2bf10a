package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendlog/internal/model"
)

// ExpenseRepository defines persistence and aggregation operations for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id uint) (*model.Expense, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Expense, error)
	Delete(ctx context.Context, id uint) error
	TotalByUser(ctx context.Context, userID uint) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, userID uint) ([]model.CategoryTotal, error)
	SumByMonth(ctx context.Context, userID uint) ([]model.MonthTotal, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListByUser returns the user's expenses, newest date first. Ties on the same
// date fall back to id so the ordering is stable across requests.
func (r *expenseRepository) ListByUser(ctx context.Context, userID uint) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, id).Error
}

// TotalByUser sums all of the user's expense amounts, zero when there are none.
func (r *expenseRepository) TotalByUser(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *expenseRepository) SumByCategory(ctx context.Context, userID uint) ([]model.CategoryTotal, error) {
	var rows []model.CategoryTotal
	if err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Where("user_id = ?", userID).
		Select("category, SUM(amount) AS amount").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByMonth groups amounts by the YYYY-MM truncation of the expense date,
// ascending by month.
func (r *expenseRepository) SumByMonth(ctx context.Context, userID uint) ([]model.MonthTotal, error) {
	var rows []model.MonthTotal
	if err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Where("user_id = ?", userID).
		Select("DATE_FORMAT(date, '%Y-%m') AS month, SUM(amount) AS amount").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
