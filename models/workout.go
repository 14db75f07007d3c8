package models

import (
	"time"

	"gorm.io/gorm"
)

// Workout marks one verified workout day. Date is truncated to local
// midnight; the composite unique index keeps one row per (user, day).
type Workout struct {
	gorm.Model
	UserID   uint      `gorm:"not null;uniqueIndex:idx_workouts_user_date"`
	Date     time.Time `gorm:"not null;uniqueIndex:idx_workouts_user_date"`
	ImageRef string    `gorm:"not null"`
	Notes    string
}
