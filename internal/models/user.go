package models

import (
	"gorm.io/gorm"
)

// User is the model for a user account.
type User struct {
	gorm.Model
	Email          string `gorm:"unique;index"`
	HashedPassword string
	Language       string `gorm:"default:'en'"`
	Location       string
}
