package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FullName      string
	HeightCm      float64
	WeightKg      float64
	ResetToken    string
	ResetTokenExp time.Time
}
