package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Budget is the spending limit of a user for one calendar month. At most one
// record exists per user and month; this is application-level, looked up
// before insert, and not enforced with a unique index.
type Budget struct {
	DefaultModel
	UserID          uuid.UUID       `json:"user" gorm:"index"`
	User            User            `json:"-"`
	Month           int             `json:"month"` // Calendar month, zero-indexed (0 = January)
	Year            int             `json:"year"`
	Limit           decimal.Decimal `json:"limit" gorm:"type:DECIMAL(20,8)"`
	CarriedOver     decimal.Decimal `json:"carriedOver" gorm:"type:DECIMAL(20,8)"`
	RolloverEnabled bool            `json:"rolloverEnabled"`
	CategoryLimits  CategoryLimits  `json:"categoryLimits"`
	Entries         []BudgetEntry   `json:"history" gorm:"foreignKey:BudgetID"`
}

// BudgetEntry is one snapshot in a budget's history log. Entries are
// appended on every set call and never changed or removed afterwards.
type BudgetEntry struct {
	ID              uuid.UUID       `json:"-"`
	BudgetID        uuid.UUID       `json:"-" gorm:"index"`
	Date            time.Time       `json:"date"`
	Limit           decimal.Decimal `json:"limit" gorm:"type:DECIMAL(20,8)"`
	CarriedOver     decimal.Decimal `json:"carriedOver" gorm:"type:DECIMAL(20,8)"`
	RolloverEnabled bool            `json:"rolloverEnabled"`
	CategoryLimits  CategoryLimits  `json:"categoryLimits"`
}

// BeforeCreate generates the UUID for the entry.
func (e *BudgetEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// BudgetUpdate carries the optional fields of a set call. Nil fields were
// not provided and leave the current values untouched.
type BudgetUpdate struct {
	Limit          *decimal.Decimal
	CategoryLimits CategoryLimits
	Rollover       *bool
}

// EffectiveLimit is the actual spending ceiling for the month. It is derived
// from limit and carry-over and never stored.
func (b Budget) EffectiveLimit() decimal.Decimal {
	return b.Limit.Add(b.CarriedOver)
}

// BudgetForMonth returns the budget of the user for the given month with its
// history loaded, or an ErrResourceNotFound error when none exists.
func BudgetForMonth(userID uuid.UUID, month types.Month) (Budget, error) {
	m, y := month.ZeroIndexed()

	var budget Budget
	err := DB.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Where("user_id = ? AND month = ? AND year = ?", userID, m, y).
		First(&budget).Error

	return budget, err
}

// budgetForMonth is the lookup used inside the ledger itself. It skips
// loading the history as neither the carry computation nor the update need
// it.
func budgetForMonth(userID uuid.UUID, month types.Month) (Budget, error) {
	m, y := month.ZeroIndexed()

	var budget Budget
	err := DB.
		Where("user_id = ? AND month = ? AND year = ?", userID, m, y).
		First(&budget).Error

	return budget, err
}

// Remaining computes the unspent balance of the budget's month, floored at
// zero so that overspending never produces a negative carry.
//
// An expense counts toward the month when its business date or its creation
// timestamp falls into the month window. Both are checked because some
// expenses lack a reliable business date.
func (b *Budget) Remaining() (decimal.Decimal, error) {
	window := types.FromZeroIndexed(b.Month, b.Year)
	start, end := window.First(), window.Last()

	var spent decimal.NullDecimal
	err := DB.Model(&Expense{}).
		Where("user_id = ?", b.UserID).
		Where("(date >= ? AND date <= ?) OR (created_at >= ? AND created_at <= ?)", start, end, start, end).
		Select("SUM(amount)").
		Row().
		Scan(&spent)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for %s failed: %w", window, err)
	}

	remaining := b.EffectiveLimit().Sub(spent.Decimal)
	if remaining.IsNegative() {
		return decimal.Zero, nil
	}

	return remaining, nil
}

// SetBudget creates or updates the budget of the month that now falls into
// and appends a snapshot to its history.
//
// The rollover flag is taken from the update when provided, inherited from
// the previous month's record otherwise, and defaults to true. When the flag
// resolves to true and a previous-month record exists, its remaining balance
// is carried over; the carry is not recomputed when that record changes
// later.
//
// Concurrent calls for the same user and month race between lookup and
// write. The last writer wins, with both history entries retained.
func SetBudget(userID uuid.UUID, now time.Time, update BudgetUpdate) (Budget, error) {
	current := types.MonthOf(now)

	previous, err := budgetForMonth(userID, current.AddDate(0, -1))
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		return Budget{}, err
	}
	hasPrevious := err == nil

	rollover := true
	if hasPrevious {
		rollover = previous.RolloverEnabled
	}
	if update.Rollover != nil {
		rollover = *update.Rollover
	}

	carried := decimal.Zero
	if rollover && hasPrevious {
		carried, err = previous.Remaining()
		if err != nil {
			return Budget{}, err
		}
	}

	budget, err := budgetForMonth(userID, current)
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		return Budget{}, err
	}

	if err == nil {
		if update.Limit != nil {
			budget.Limit = *update.Limit
		}
		if update.CategoryLimits != nil {
			budget.CategoryLimits = update.CategoryLimits
		}
		budget.RolloverEnabled = rollover
		budget.CarriedOver = carried

		err = DB.Omit(clause.Associations).Save(&budget).Error
	} else {
		month, year := current.ZeroIndexed()

		limit := decimal.Zero
		if update.Limit != nil {
			limit = *update.Limit
		}

		budget = Budget{
			UserID:          userID,
			Month:           month,
			Year:            year,
			Limit:           limit,
			CategoryLimits:  update.CategoryLimits,
			RolloverEnabled: rollover,
			CarriedOver:     carried,
		}
		err = DB.Omit(clause.Associations).Create(&budget).Error
	}
	if err != nil {
		return Budget{}, err
	}

	// The snapshot is appended on every call, even when nothing changed: the
	// history records that a set call occurred, not that a field changed.
	entry := BudgetEntry{
		BudgetID:        budget.ID,
		Date:            now.In(time.UTC),
		Limit:           budget.Limit,
		CarriedOver:     budget.CarriedOver,
		RolloverEnabled: budget.RolloverEnabled,
		CategoryLimits:  budget.CategoryLimits,
	}
	err = DB.Create(&entry).Error
	if err != nil {
		return Budget{}, err
	}

	err = DB.Where("budget_id = ?", budget.ID).Order("date ASC").Find(&budget.Entries).Error
	return budget, err
}
