package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/types"
	"gorm.io/gorm"
)

// AssignUsers assigns a batch of users to a project. The batch is best-effort:
// it runs in one transaction, but a per-user failure is recorded in the
// outcome's Errors and does not roll back the users that succeeded.
func AssignUsers(projectID uint, userIDs []uint, caller types.AuthenticatedUser, notes string) (*types.AssignOutcome, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Project with ID %d does not exist", projectID)}
		}
		return nil, err
	}

	users, err := resolveUsers(userIDs)

	if err != nil {
		return nil, err
	}

	outcome := &types.AssignOutcome{
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		Assigned:        []types.AssignmentChange{},
		AlreadyAssigned: []types.AssignmentChange{},
		Errors:          []types.AssignmentError{},
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			var assignment models.ProjectAssignment

			err := tx.Where("project_id = ? AND user_id = ?", project.ID, user.ID).First(&assignment).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				assignment = models.ProjectAssignment{
					ProjectID:    project.ID,
					UserID:       user.ID,
					AssignedByID: caller.ID,
					AssignedDate: time.Now(),
					IsActive:     true,
					Notes:        notes,
				}

				if err := tx.Create(&assignment).Error; err != nil {
					// A concurrent assign for the same pair can slip in between
					// the read and this insert; the unique index turns that
					// into a per-user error instead of a duplicate row.
					outcome.Errors = append(outcome.Errors, types.AssignmentError{UserID: user.ID, Error: err.Error()})
					continue
				}

				outcome.Assigned = append(outcome.Assigned, types.AssignmentChange{
					UserID: user.ID,
					Name:   user.Name,
					Email:  user.Email,
				})

			case err != nil:
				outcome.Errors = append(outcome.Errors, types.AssignmentError{UserID: user.ID, Error: err.Error()})

			case !assignment.IsActive:
				assignment.IsActive = true
				assignment.AssignedByID = caller.ID
				assignment.Notes = notes

				if err := tx.Save(&assignment).Error; err != nil {
					outcome.Errors = append(outcome.Errors, types.AssignmentError{UserID: user.ID, Error: err.Error()})
					continue
				}

				outcome.Assigned = append(outcome.Assigned, types.AssignmentChange{
					UserID:      user.ID,
					Name:        user.Name,
					Email:       user.Email,
					Reactivated: true,
				})

			default:
				outcome.AlreadyAssigned = append(outcome.AlreadyAssigned, types.AssignmentChange{
					UserID: user.ID,
					Name:   user.Name,
					Email:  user.Email,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// UnassignUsers deactivates assignments for a batch of users. Rows are never
// deleted; users without an active assignment land in NotAssigned.
func UnassignUsers(projectID uint, userIDs []uint, caller types.AuthenticatedUser) (*types.UnassignOutcome, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Project with ID %d does not exist", projectID)}
		}
		return nil, err
	}

	outcome := &types.UnassignOutcome{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Unassigned:  []types.AssignmentChange{},
		NotAssigned: []types.AssignmentChange{},
		Errors:      []types.AssignmentError{},
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var assignments []models.ProjectAssignment

		if err := tx.Preload("User").
			Where("project_id = ? AND user_id IN ? AND is_active = ?", project.ID, userIDs, true).
			Find(&assignments).Error; err != nil {
			return err
		}

		unassignedIDs := make(map[uint]bool, len(assignments))

		for i := range assignments {
			assignment := &assignments[i]
			assignment.IsActive = false

			if err := tx.Save(assignment).Error; err != nil {
				outcome.Errors = append(outcome.Errors, types.AssignmentError{UserID: assignment.UserID, Error: err.Error()})
				continue
			}

			unassignedIDs[assignment.UserID] = true
			outcome.Unassigned = append(outcome.Unassigned, types.AssignmentChange{
				UserID: assignment.UserID,
				Name:   assignment.User.Name,
				Email:  assignment.User.Email,
			})
		}

		var remaining []uint

		for _, id := range userIDs {
			if !unassignedIDs[id] {
				remaining = append(remaining, id)
			}
		}

		if len(remaining) > 0 {
			var notAssigned []models.User

			if err := tx.Where("id IN ?", remaining).Find(&notAssigned).Error; err != nil {
				return err
			}

			for _, user := range notAssigned {
				outcome.NotAssigned = append(outcome.NotAssigned, types.AssignmentChange{
					UserID: user.ID,
					Name:   user.Name,
					Email:  user.Email,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// GetProjectAssignments lists a project's assignments, newest first.
// Inactive rows are filtered out unless includeInactive is set.
func GetProjectAssignments(projectID uint, includeInactive bool) ([]types.AssignmentRecord, error) {
	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Project with ID %d does not exist", projectID)}
		}
		return nil, err
	}

	query := db.DB.Preload("User").Preload("AssignedBy").Where("project_id = ?", project.ID)

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var assignments []models.ProjectAssignment

	if err := query.Order("assigned_date DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	records := make([]types.AssignmentRecord, 0, len(assignments))

	for _, assignment := range assignments {
		records = append(records, types.AssignmentRecord{
			ID: assignment.ID,
			User: types.AssignedUser{
				ID:      assignment.User.ID,
				Name:    assignment.User.Name,
				Email:   assignment.User.Email,
				IsAdmin: assignment.User.IsAdmin,
			},
			AssignedBy: types.UserRef{
				ID:    assignment.AssignedBy.ID,
				Name:  assignment.AssignedBy.Name,
				Email: assignment.AssignedBy.Email,
			},
			AssignedDate: assignment.AssignedDate.Format(DateFormat),
			IsActive:     assignment.IsActive,
			Notes:        assignment.Notes,
		})
	}

	return records, nil
}

// GetUserProjects is the symmetric query from the user side. Callers may only
// read their own list unless they are admins.
func GetUserProjects(userID uint, includeInactive bool, caller types.AuthenticatedUser) ([]types.UserProjectRecord, error) {
	if err := RequireSelfOrAdmin(caller, userID); err != nil {
		return nil, err
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("User with ID %d does not exist", userID)}
		}
		return nil, err
	}

	query := db.DB.Preload("Project.Owner").Preload("AssignedBy").Where("user_id = ?", user.ID)

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var assignments []models.ProjectAssignment

	if err := query.Order("assigned_date DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	records := make([]types.UserProjectRecord, 0, len(assignments))

	for _, assignment := range assignments {
		records = append(records, types.UserProjectRecord{
			Project: types.ProjectRef{
				ID:     assignment.Project.ID,
				Name:   assignment.Project.Name,
				Client: assignment.Project.Client,
				Owner: types.UserRef{
					ID:    assignment.Project.Owner.ID,
					Name:  assignment.Project.Owner.Name,
					Email: assignment.Project.Owner.Email,
				},
			},
			Assignment: types.AssignmentInfo{
				ID: assignment.ID,
				AssignedBy: types.UserRef{
					ID:    assignment.AssignedBy.ID,
					Name:  assignment.AssignedBy.Name,
					Email: assignment.AssignedBy.Email,
				},
				AssignedDate: assignment.AssignedDate.Format(DateFormat),
				IsActive:     assignment.IsActive,
				Notes:        assignment.Notes,
			},
		})
	}

	return records, nil
}

// GetAssignmentStats computes coverage statistics over active assignments.
// Coverage percentages are 0 when their denominator is 0.
func GetAssignmentStats(caller types.AuthenticatedUser) (*types.AssignmentStats, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}

	stats := &types.AssignmentStats{}

	if err := db.DB.Model(&models.ProjectAssignment{}).
		Where("is_active = ?", true).
		Count(&stats.TotalAssignments).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Model(&models.User{}).
		Where("is_admin = ?", false).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Model(&models.Project{}).
		Where("NOT EXISTS (SELECT 1 FROM project_assignments"+
			" WHERE project_assignments.project_id = projects.id"+
			" AND project_assignments.is_active = ?"+
			" AND project_assignments.deleted_at IS NULL)", true).
		Count(&stats.UnassignedProjects).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Model(&models.User{}).
		Where("is_admin = ?", false).
		Where("NOT EXISTS (SELECT 1 FROM project_assignments"+
			" WHERE project_assignments.user_id = users.id"+
			" AND project_assignments.is_active = ?"+
			" AND project_assignments.deleted_at IS NULL)", true).
		Count(&stats.UnassignedUsers).Error; err != nil {
		return nil, err
	}

	stats.AssignmentCoverage = types.AssignmentCoverage{
		Projects: coverage(stats.TotalProjects, stats.UnassignedProjects),
		Users:    coverage(stats.TotalUsers, stats.UnassignedUsers),
	}

	return stats, nil
}

func coverage(total, unassigned int64) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(total-unassigned)/float64(total)*1000) / 10
}

// resolveUsers loads the batch and rejects the whole call when any id is
// unknown, naming every offending id.
func resolveUsers(userIDs []uint) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, &ValidationError{Message: "No user IDs provided"}
	}

	var users []models.User

	if err := db.DB.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]bool, len(users))

	for _, user := range users {
		found[user.ID] = true
	}

	var invalid []uint

	for _, id := range userIDs {
		if !found[id] {
			invalid = append(invalid, id)
		}
	}

	if len(invalid) > 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("Invalid user IDs: %v", invalid)}
	}

	return users, nil
}
