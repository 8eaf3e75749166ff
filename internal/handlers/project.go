package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/services"
	"github.com/clockwise-dev/clockwise/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Client    string `json:"client"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ProjectResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Client    string `json:"client"`
	OwnerID   uint   `json:"owner_id"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Status    string `json:"status"`
}

func projectResponse(project *models.Project) ProjectResponse {
	response := ProjectResponse{
		ID:      project.ID,
		Name:    project.Name,
		Client:  project.Client,
		OwnerID: project.OwnerID,
		Status:  project.Status(time.Now()),
	}

	if project.StartDate != nil {
		response.StartDate = project.StartDate.Format(services.DateFormat)
	}

	if project.EndDate != nil {
		response.EndDate = project.EndDate.Format(services.DateFormat)
	}

	return response
}

// parseWindow validates the optional start/end dates; both must be set for
// the project to ever accept time entries, but either may be left empty.
func parseWindow(body *ProjectRequest) (*time.Time, *time.Time, string) {
	var start, end *time.Time

	if body.StartDate != "" {
		parsed, err := time.Parse(services.DateFormat, body.StartDate)

		if err != nil {
			return nil, nil, "Invalid start_date, expected YYYY-MM-DD"
		}

		start = &parsed
	}

	if body.EndDate != "" {
		parsed, err := time.Parse(services.DateFormat, body.EndDate)

		if err != nil {
			return nil, nil, "Invalid end_date, expected YYYY-MM-DD"
		}

		end = &parsed
	}

	if start != nil && end != nil && start.After(*end) {
		return nil, nil, "start_date must not be after end_date"
	}

	return start, end, ""
}

func CreateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.RequireAdmin(currentUser); err != nil {
		respondServiceError(ctx, err)
		return
	}

	var body ProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	start, end, message := parseWindow(&body)

	if message != "" {
		respondError(ctx, http.StatusBadRequest, message)
		return
	}

	project := models.Project{
		Name:      body.Name,
		Client:    body.Client,
		OwnerID:   currentUser.ID,
		StartDate: start,
		EndDate:   end,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, projectResponse(&project))
}

// ListProjects returns every project for admins; other callers see projects
// they own or hold an active assignment on.
func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var projects []models.Project

	if currentUser.IsAdmin {
		if err := db.DB.Find(&projects).Error; err != nil {
			respondServiceError(ctx, err)
			return
		}
	} else {
		ids, err := services.AccessibleProjectIDs(currentUser.ID)

		if err != nil {
			respondServiceError(ctx, err)
			return
		}

		if len(ids) > 0 {
			if err := db.DB.Where("id IN ?", ids).Find(&projects).Error; err != nil {
				respondServiceError(ctx, err)
				return
			}
		}
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	respondData(ctx, http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
			return
		}
		respondServiceError(ctx, err)
		return
	}

	if !currentUser.IsAdmin && project.OwnerID != currentUser.ID {
		ids, err := services.AccessibleProjectIDs(currentUser.ID)

		if err != nil {
			respondServiceError(ctx, err)
			return
		}

		accessible := false

		for _, id := range ids {
			if id == project.ID {
				accessible = true
				break
			}
		}

		if !accessible {
			respondError(ctx, http.StatusForbidden, "You do not have access to this project")
			return
		}
	}

	respondData(ctx, http.StatusOK, projectResponse(&project))
}

func UpdateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.RequireAdmin(currentUser); err != nil {
		respondServiceError(ctx, err)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var body ProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	start, end, message := parseWindow(&body)

	if message != "" {
		respondError(ctx, http.StatusBadRequest, message)
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
			return
		}
		respondServiceError(ctx, err)
		return
	}

	project.Name = body.Name
	project.Client = body.Client
	project.StartDate = start
	project.EndDate = end

	if err := db.DB.Save(&project).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, projectResponse(&project))
}

func DeleteProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.RequireAdmin(currentUser); err != nil {
		respondServiceError(ctx, err)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
			return
		}
		respondServiceError(ctx, err)
		return
	}

	var entryCount int64

	if err := db.DB.Model(&models.HourEntry{}).
		Where("project_id = ?", project.ID).
		Count(&entryCount).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	if entryCount > 0 {
		respondError(ctx, http.StatusBadRequest, "Cannot delete a project with logged hours")
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
