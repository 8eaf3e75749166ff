package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectStatusNoDates    = "no_dates"
	ProjectStatusNotStarted = "not_started"
	ProjectStatusActive     = "active"
	ProjectStatusInactive   = "inactive"
)

type Project struct {
	gorm.Model

	Name      string `gorm:"not null"`
	Client    string
	OwnerID   uint       `gorm:"not null;index"`
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`

	// Relationships
	Owner       User                `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	HourEntries []HourEntry         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// HasWindow reports whether the project has a fully defined active window.
// Projects without one cannot accept time entries.
func (p *Project) HasWindow() bool {
	return p.StartDate != nil && p.EndDate != nil
}

// Status derives the project state from its window relative to the given day.
// It is never stored.
func (p *Project) Status(today time.Time) string {
	if !p.HasWindow() {
		return ProjectStatusNoDates
	}

	day := dateOnly(today)

	if day.Before(dateOnly(*p.StartDate)) {
		return ProjectStatusNotStarted
	}

	if day.After(dateOnly(*p.EndDate)) {
		return ProjectStatusInactive
	}

	return ProjectStatusActive
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
