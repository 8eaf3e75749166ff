package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/services"
	"github.com/clockwise-dev/clockwise/internal/utils"
	"github.com/gin-gonic/gin"
)

type LogHoursRequest struct {
	ProjectID uint    `json:"project_id" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Hours     float64 `json:"hours" binding:"required"`
	Note      string  `json:"note"`
}

type UpdateHoursRequest struct {
	Date  string  `json:"date" binding:"required"`
	Hours float64 `json:"hours" binding:"required"`
	Note  string  `json:"note"`
}

type HourEntryResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Note        string  `json:"note"`
}

func entryResponse(entry *models.HourEntry, projectName string) HourEntryResponse {
	return HourEntryResponse{
		ID:          entry.ID,
		UserID:      entry.UserID,
		ProjectID:   entry.ProjectID,
		ProjectName: projectName,
		Date:        entry.Date.Format(services.DateFormat),
		Hours:       entry.Hours,
		Note:        entry.Note,
	}
}

func ListHours(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	query := db.DB.Preload("Project")

	if currentUser.IsAdmin {
		if userFilter := ctx.Query("user"); userFilter != "" {
			query = query.Where("user_id = ?", userFilter)
		}
	} else {
		query = query.Where("user_id = ?", currentUser.ID)
	}

	if raw := ctx.Query("start_date"); raw != "" {
		from, err := time.Parse(services.DateFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
			return
		}

		query = query.Where("date >= ?", from)
	}

	if raw := ctx.Query("end_date"); raw != "" {
		to, err := time.Parse(services.DateFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
			return
		}

		query = query.Where("date <= ?", to)
	}

	if projectFilter := ctx.Query("project"); projectFilter != "" {
		query = query.Where("project_id = ?", projectFilter)
	}

	var entries []models.HourEntry

	if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	response := make([]HourEntryResponse, 0, len(entries))

	for i := range entries {
		response = append(response, entryResponse(&entries[i], entries[i].Project.Name))
	}

	respondData(ctx, http.StatusOK, response)
}

func LogHours(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var body LogHoursRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	date, err := time.Parse(services.DateFormat, body.Date)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	entry, err := services.LogHours(currentUser, body.ProjectID, date, body.Hours, body.Note)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	var project models.Project
	db.DB.First(&project, entry.ProjectID)

	BroadcastRefresh(fmt.Sprint(entry.ProjectID))

	respondData(ctx, http.StatusOK, entryResponse(entry, project.Name))
}

func UpdateHours(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entryID, err := utils.GetEntryID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var body UpdateHoursRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	date, err := time.Parse(services.DateFormat, body.Date)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	entry, err := services.UpdateEntry(currentUser, entryID, date, body.Hours, body.Note)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	var project models.Project
	db.DB.First(&project, entry.ProjectID)

	BroadcastRefresh(fmt.Sprint(entry.ProjectID))

	respondData(ctx, http.StatusOK, entryResponse(entry, project.Name))
}

func DeleteHours(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entryID, err := utils.GetEntryID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := services.DeleteEntry(currentUser, entryID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
