package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectAssignment links a user to a project. At most one row exists per
// (project, user) pair; unassignment flips IsActive instead of deleting so
// the audit trail survives reassignment cycles.
type ProjectAssignment struct {
	gorm.Model

	ProjectID    uint      `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_project_user"`
	AssignedByID uint      `gorm:"not null;index"`
	AssignedDate time.Time `gorm:"not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	Notes        string

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User       User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedBy User    `gorm:"foreignKey:AssignedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
