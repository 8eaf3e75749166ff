package models

import (
	"time"

	"gorm.io/gorm"
)

// HourEntry records hours a user logged against a project on a given day.
// The composite unique index makes writes replace-on-conflict upserts: at
// most one row per (user, project, date).
type HourEntry struct {
	gorm.Model

	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_project_date"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_user_project_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_project_date"`
	Hours     float64   `gorm:"type:decimal(5,2);not null"`
	Note      string

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
