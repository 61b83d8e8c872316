package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Order represents a single item ordered at a reservation
type Order struct {
	ID            uint        `json:"-" gorm:"primary_key"`
	ReservationID uint        `json:"-" gorm:"index"`
	DietaryTags   DietaryTags `json:"dietary_tags" gorm:"type:text"`
}

// DietaryTags holds the free-text dietary labels attached to an order.
// Tags are stored as a JSON array in a single text column.
type DietaryTags []string

// Value implements driver.Valuer
func (t DietaryTags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (t *DietaryTags) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = DietaryTags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into DietaryTags", src)
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("invalid dietary tags %q: %w", raw, err)
	}
	if tags == nil {
		tags = []string{}
	}
	*t = tags
	return nil
}
