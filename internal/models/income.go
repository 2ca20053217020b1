package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is a single earning record.
type Income struct {
	DefaultModel
	UserID uuid.UUID       `json:"user" gorm:"index"`
	User   User            `json:"-"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Source string          `json:"source"`
	Date   time.Time       `json:"date"`
}

// BeforeSave defaults the date to the current time.
func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Source = strings.TrimSpace(i.Source)

	if i.Date.IsZero() {
		i.Date = time.Now().In(time.UTC)
	} else {
		i.Date = i.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (i *Income) AfterFind(tx *gorm.DB) error {
	i.Date = i.Date.In(time.UTC)
	return i.DefaultModel.AfterFind(tx)
}
