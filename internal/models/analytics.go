package models

import (
	"fmt"
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the total spending in one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthTotal is the total spending in one calendar month.
type MonthTotal struct {
	Month int             `json:"month"` // Calendar month, zero-indexed (0 = January)
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseSumSince returns the sum and count of a user's expenses with a
// business date at or after the given time.
func ExpenseSumSince(userID uuid.UUID, since time.Time) (decimal.Decimal, int64, error) {
	var total decimal.NullDecimal
	var count int64

	err := DB.Model(&Expense{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Select("SUM(amount), COUNT(*)").
		Row().
		Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("summing expenses since %s failed: %w", since, err)
	}

	return total.Decimal, count, nil
}

// ExpenseTotalsByCategory returns the all-time spending of a user grouped by
// category.
func ExpenseTotalsByCategory(userID uuid.UUID) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)

	err := DB.Model(&Expense{}).
		Where("user_id = ?", userID).
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("category ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("grouping expenses by category failed: %w", err)
	}

	return totals, nil
}

// ExpenseMonthlyTotals returns per-month spending totals for the given number
// of months up to and including the month that now falls into, oldest first.
// Months without expenses are omitted.
func ExpenseMonthlyTotals(userID uuid.UUID, months int, now time.Time) ([]MonthTotal, error) {
	totals := make([]MonthTotal, 0, months)
	current := types.MonthOf(now)

	for i := months - 1; i >= 0; i-- {
		window := current.AddDate(0, -i)

		var total decimal.NullDecimal
		var count int64
		err := DB.Model(&Expense{}).
			Where("user_id = ? AND date >= ? AND date <= ?", userID, window.First(), window.Last()).
			Select("SUM(amount), COUNT(*)").
			Row().
			Scan(&total, &count)
		if err != nil {
			return nil, fmt.Errorf("summing expenses for %s failed: %w", window, err)
		}

		if count == 0 {
			continue
		}

		month, year := window.ZeroIndexed()
		totals = append(totals, MonthTotal{
			Month: month,
			Year:  year,
			Total: total.Decimal,
		})
	}

	return totals, nil
}
