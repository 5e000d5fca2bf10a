package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"spendlog/internal/cache"
	apperrors "spendlog/internal/errors"
	"spendlog/internal/model"
	"spendlog/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	summaryCacheTTL = 5 * time.Minute
)

// AddExpenseInput carries the raw form fields of a new expense. Parsing and
// validation happen in the service before anything touches the repository.
type AddExpenseInput struct {
	Title    string
	Amount   string
	Category string
	Date     string
	Note     string
}

// Summary bundles the aggregates served to the dashboard and chart endpoint.
type Summary struct {
	ByCategory []model.CategoryTotal `json:"by_category"`
	Monthly    []model.MonthTotal    `json:"monthly"`
}

// ExpenseService handles expense operations.
type ExpenseService interface {
	Add(ctx context.Context, owner *model.User, input AddExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, id uint, requester *model.User) error
	Overview(ctx context.Context, owner *model.User) ([]model.Expense, decimal.Decimal, error)
	Summary(ctx context.Context, owner *model.User) (*Summary, error)
}

type expenseService struct {
	repo  repository.ExpenseRepository
	cache *cache.Client
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo repository.ExpenseRepository, cache *cache.Client) ExpenseService {
	return &expenseService{
		repo:  repo,
		cache: cache,
	}
}

func (s *expenseService) summaryCacheKey(userID uint) string {
	return fmt.Sprintf("summary:%d", userID)
}

// Add validates the raw input, stores the expense and invalidates the owner's
// cached summary. An unparsable date is not an error: it falls back to the
// current UTC date.
func (s *expenseService) Add(ctx context.Context, owner *model.User, input AddExpenseInput) (*model.Expense, error) {
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	amountStr := strings.TrimSpace(input.Amount)
	if title == "" || category == "" || amountStr == "" {
		return nil, apperrors.ErrMissingFields
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, apperrors.ErrInvalidAmount
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(input.Date))
	if err != nil {
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		logrus.WithField("date", input.Date).Debug("expense date fallback to current date")
	}

	expense := &model.Expense{
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     date,
		Note:     strings.TrimSpace(input.Note),
		UserID:   owner.ID,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryCacheKey(owner.ID))
	return expense, nil
}

// Delete removes an expense after an explicit ownership check. Foreign
// expenses are left untouched.
func (s *expenseService) Delete(ctx context.Context, id uint, requester *model.User) error {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrExpenseNotFound
		}
		return fmt.Errorf("find expense: %w", err)
	}

	if expense.UserID != requester.ID {
		return apperrors.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryCacheKey(requester.ID))
	return nil
}

// Overview returns the owner's expenses (newest first) and their total.
func (s *expenseService) Overview(ctx context.Context, owner *model.User) ([]model.Expense, decimal.Decimal, error) {
	expenses, err := s.repo.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list expenses: %w", err)
	}

	total, err := s.repo.TotalByUser(ctx, owner.ID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("total expenses: %w", err)
	}
	return expenses, total, nil
}

// Summary returns per-category and per-month aggregates with caching.
func (s *expenseService) Summary(ctx context.Context, owner *model.User) (*Summary, error) {
	key := s.summaryCacheKey(owner.ID)

	// Try cache first
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached Summary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	byCategory, err := s.repo.SumByCategory(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("category summary: %w", err)
	}

	monthly, err := s.repo.SumByMonth(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}

	summary := &Summary{ByCategory: byCategory, Monthly: monthly}

	// Cache the result
	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, key, payload, summaryCacheTTL)
	}
	return summary, nil
}
