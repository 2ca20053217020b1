package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryLimits maps a category name to its informational sub-limit. The
// sub-limits are not enforced against the monthly limit.
//
// A nil map means "not provided"; it is stored and returned as an empty
// object.
type CategoryLimits map[string]decimal.Decimal

// Value returns the value for the SQL driver to write to the database.
func (l CategoryLimits) Value() (driver.Value, error) {
	if l == nil {
		l = CategoryLimits{}
	}

	j, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return string(j), nil
}

// Scan reads the value from the database.
func (l *CategoryLimits) Scan(value interface{}) error {
	if value == nil {
		*l = CategoryLimits{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CategoryLimits", value)
	}

	return json.Unmarshal(data, l)
}

// MarshalJSON implements the json.Marshaler interface.
// A nil map is serialized as an empty object, never as null.
func (l CategoryLimits) MarshalJSON() ([]byte, error) {
	if l == nil {
		l = CategoryLimits{}
	}

	return json.Marshal(map[string]decimal.Decimal(l))
}

// GormDataType defines the data type used by gorm for the type.
func (CategoryLimits) GormDataType() string {
	return "text"
}
