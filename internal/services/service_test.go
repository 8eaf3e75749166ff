package services

import (
	"testing"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.HourEntry{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db.DB = gdb
}

func createUser(t *testing.T, name, email string, isAdmin bool) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		IsAdmin:      isAdmin,
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}

	return user
}

func createProject(t *testing.T, name string, ownerID uint, start, end *time.Time) models.Project {
	t.Helper()

	project := models.Project{
		Name:      name,
		Client:    "Acme",
		OwnerID:   ownerID,
		StartDate: start,
		EndDate:   end,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project %s: %v", name, err)
	}

	return project
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func asCaller(user models.User) types.AuthenticatedUser {
	return types.AuthenticatedUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

func assignmentCount(t *testing.T, projectID, userID uint) int64 {
	t.Helper()

	var count int64

	if err := db.DB.Model(&models.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count assignments: %v", err)
	}

	return count
}
