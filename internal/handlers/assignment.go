package handlers

import (
	"fmt"
	"net/http"

	"github.com/clockwise-dev/clockwise/internal/services"
	"github.com/clockwise-dev/clockwise/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssignUsersRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Notes   string `json:"notes"`
}

type UnassignUsersRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

func AssignUsers(ctx *gin.Context) {
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

	var body AssignUsersRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	outcome, err := services.AssignUsers(projectID, body.UserIDs, currentUser, body.Notes)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	BroadcastRefresh(fmt.Sprint(projectID))

	respondMessage(ctx, http.StatusOK,
		fmt.Sprintf("Processed %d users for project %q", len(body.UserIDs), outcome.ProjectName),
		outcome)
}

func UnassignUsers(ctx *gin.Context) {
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

	var body UnassignUsersRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	outcome, err := services.UnassignUsers(projectID, body.UserIDs, currentUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	BroadcastRefresh(fmt.Sprint(projectID))

	respondData(ctx, http.StatusOK, outcome)
}

func GetProjectAssignments(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	includeInactive := ctx.Query("include_inactive") == "true"

	records, err := services.GetProjectAssignments(projectID, includeInactive)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, records)
}

func GetUserProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	includeInactive := ctx.Query("include_inactive") == "true"

	records, err := services.GetUserProjects(userID, includeInactive, currentUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, records)
}

func GetAssignmentStats(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := services.GetAssignmentStats(currentUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, stats)
}
