package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/types"
	"gorm.io/gorm"
)

// AccessibleProjectIDs returns the projects a user may log time against:
// projects they own plus projects where they hold an active assignment.
func AccessibleProjectIDs(userID uint) ([]uint, error) {
	var owned []uint

	if err := db.DB.Model(&models.Project{}).
		Where("owner_id = ?", userID).
		Pluck("id", &owned).Error; err != nil {
		return nil, err
	}

	var assigned []uint

	if err := db.DB.Model(&models.ProjectAssignment{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("project_id", &assigned).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(owned)+len(assigned))
	ids := make([]uint, 0, len(owned)+len(assigned))

	for _, id := range append(owned, assigned...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// LogHours validates and upserts an hour entry for the caller. A second write
// for the same (user, project, date) replaces hours and note in place.
func LogHours(caller types.AuthenticatedUser, projectID uint, date time.Time, hours float64, note string) (*models.HourEntry, error) {
	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Project with ID %d does not exist", projectID)}
		}
		return nil, err
	}

	if err := checkProjectAccess(caller, &project); err != nil {
		return nil, err
	}

	if err := checkEntryWindow(&project, date); err != nil {
		return nil, err
	}

	if hours <= 0 || hours > 24 {
		return nil, &ValidationError{Message: "Hours must be between 0 and 24"}
	}

	day := dateOnly(date)
	var entry models.HourEntry

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND project_id = ? AND date = ?", caller.ID, project.ID, day).
			First(&entry).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.HourEntry{
				UserID:    caller.ID,
				ProjectID: project.ID,
				Date:      day,
				Hours:     hours,
				Note:      note,
			}

			return tx.Create(&entry).Error
		}

		if err != nil {
			return err
		}

		// Replacement, not accumulation.
		entry.Hours = hours
		entry.Note = note

		return tx.Save(&entry).Error
	})

	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// UpdateEntry rewrites an existing entry. The window check runs again for the
// new date, and moving onto a day that already has an entry for the same
// project is rejected rather than silently merged.
func UpdateEntry(caller types.AuthenticatedUser, entryID uint, date time.Time, hours float64, note string) (*models.HourEntry, error) {
	var entry models.HourEntry

	if err := db.DB.Preload("Project").First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Hour entry with ID %d does not exist", entryID)}
		}
		return nil, err
	}

	if entry.UserID != caller.ID && !caller.IsAdmin {
		return nil, &PermissionDeniedError{Message: "You can only modify your own hour entries"}
	}

	if err := checkEntryWindow(&entry.Project, date); err != nil {
		return nil, err
	}

	if hours <= 0 || hours > 24 {
		return nil, &ValidationError{Message: "Hours must be between 0 and 24"}
	}

	day := dateOnly(date)

	if !day.Equal(dateOnly(entry.Date)) {
		var existing models.HourEntry

		err := db.DB.Where("user_id = ? AND project_id = ? AND date = ? AND id != ?",
			entry.UserID, entry.ProjectID, day, entry.ID).First(&existing).Error

		if err == nil {
			return nil, &ValidationError{Message: fmt.Sprintf("An entry for project %q on %s already exists", entry.Project.Name, day.Format(DateFormat))}
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	entry.Date = day
	entry.Hours = hours
	entry.Note = note

	if err := db.DB.Save(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// DeleteEntry removes an entry; only its owner or an admin may do so.
func DeleteEntry(caller types.AuthenticatedUser, entryID uint) error {
	var entry models.HourEntry

	if err := db.DB.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("Hour entry with ID %d does not exist", entryID)}
		}
		return err
	}

	if entry.UserID != caller.ID && !caller.IsAdmin {
		return &PermissionDeniedError{Message: "You can only delete your own hour entries"}
	}

	return db.DB.Delete(&entry).Error
}

func checkProjectAccess(caller types.AuthenticatedUser, project *models.Project) error {
	if caller.IsAdmin || project.OwnerID == caller.ID {
		return nil
	}

	var count int64

	if err := db.DB.Model(&models.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ? AND is_active = ?", project.ID, caller.ID, true).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return &PermissionDeniedError{Message: fmt.Sprintf("You do not have access to project %q", project.Name)}
	}

	return nil
}

func checkEntryWindow(project *models.Project, date time.Time) error {
	if !project.HasWindow() {
		return &ValidationError{Message: fmt.Sprintf("Cannot log time for project %q without a defined active window", project.Name)}
	}

	day := dateOnly(date)
	start := dateOnly(*project.StartDate)
	end := dateOnly(*project.EndDate)

	if day.Before(start) || day.After(end) {
		return &ValidationError{Message: fmt.Sprintf(
			"Date %s is outside the active window of project %q (%s to %s)",
			day.Format(DateFormat), project.Name, start.Format(DateFormat), end.Format(DateFormat))}
	}

	return nil
}
