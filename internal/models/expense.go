package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single spending record.
type Expense struct {
	DefaultModel
	UserID   uuid.UUID       `json:"user" gorm:"index"`
	User     User            `json:"-"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
}

// categoryRules maps title patterns to the category they indicate. Patterns
// are matched case-insensitively against the whole title, first match wins.
var categoryRules = []struct {
	pattern  string
	category string
}{
	{"*zomato*", "Food"},
	{"*swiggy*", "Food"},
	{"*food*", "Food"},
	{"*uber*", "Travel"},
	{"*ola*", "Travel"},
	{"*travel*", "Travel"},
	{"*rent*", "Housing"},
	{"*house*", "Housing"},
	{"*amazon*", "Shopping"},
	{"*flipkart*", "Shopping"},
}

// DetectCategory returns the category for an expense title, or "Other" when
// no rule matches.
func DetectCategory(title string) string {
	text := strings.ToLower(title)
	for _, rule := range categoryRules {
		if glob.Glob(rule.pattern, text) {
			return rule.category
		}
	}

	return "Other"
}

// BeforeSave defaults the date to the current time and the category to the
// one detected from the title.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Title = strings.TrimSpace(e.Title)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	if e.Category == "" {
		e.Category = DetectCategory(e.Title)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	e.Date = e.Date.In(time.UTC)
	return e.DefaultModel.AfterFind(tx)
}
