package models

import (
	"errors"

	"gorm.io/gorm"
)

// QueryCategory tags a query log entry with the request type it came from.
type QueryCategory string

// QueryCategory enum values.
const (
	CategoryVoice   QueryCategory = "voice"
	CategoryText    QueryCategory = "text"
	CategoryWeather QueryCategory = "weather"
	CategoryCrop    QueryCategory = "crop"
	CategorySchemes QueryCategory = "schemes"
)

// IsValidCategory checks if the QueryCategory is valid.
func (c QueryCategory) IsValidCategory() bool {
	switch c {
	case CategoryVoice, CategoryText, CategoryWeather, CategoryCrop, CategorySchemes:
		return true
	default:
		return false
	}
}

// QueryLog is one query/response pair in a user's history. Entries are
// append-only: they are never updated after creation.
type QueryLog struct {
	gorm.Model
	UserEmail string `gorm:"index"`
	Query     string
	Response  string
	Category  QueryCategory `gorm:"type:text"`
}

// BeforeCreate is a GORM hook that runs before creating a new QueryLog.
func (q *QueryLog) BeforeCreate(tx *gorm.DB) (err error) {
	if !q.Category.IsValidCategory() {
		// Cancel transaction
		return errors.New("invalid QueryCategory provided")
	}

	return nil
}
