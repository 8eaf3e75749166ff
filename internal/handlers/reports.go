package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clockwise-dev/clockwise/internal/services"
	"github.com/clockwise-dev/clockwise/internal/utils"
	"github.com/gin-gonic/gin"
)

func parseScopeUser(ctx *gin.Context) (*uint, error) {
	raw := ctx.Query("user")

	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return nil, err
	}

	scoped := uint(id)
	return &scoped, nil
}

func GetDailySummary(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	date := time.Now()

	if raw := ctx.Query("date"); raw != "" {
		date, err = time.Parse(services.DateFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	scopeUser, err := parseScopeUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid user filter")
		return
	}

	summary, err := services.DailySummary(currentUser, date, scopeUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, summary)
}

func GetWeeklySummary(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	week := time.Now()

	if raw := ctx.Query("week"); raw != "" {
		week, err = time.Parse(services.DateFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid week, expected YYYY-MM-DD")
			return
		}
	}

	scopeUser, err := parseScopeUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid user filter")
		return
	}

	summary, err := services.WeeklySummary(currentUser, week, scopeUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, summary)
}

func GetMonthlySummary(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	month := time.Now()

	if raw := ctx.Query("month"); raw != "" {
		month, err = time.Parse(services.MonthFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
	}

	scopeUser, err := parseScopeUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid user filter")
		return
	}

	summary, err := services.MonthlySummary(currentUser, month.Year(), month.Month(), scopeUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, summary)
}

func GetProjectTimeReport(ctx *gin.Context) {
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

	var from, to *time.Time

	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.Parse(services.DateFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
			return
		}

		from = &parsed
	}

	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.Parse(services.DateFormat, raw)

		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
			return
		}

		to = &parsed
	}

	if from != nil && to != nil && from.After(*to) {
		respondError(ctx, http.StatusBadRequest, "start_date must not be after end_date")
		return
	}

	report, err := services.ProjectTimeReport(projectID, from, to, currentUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, report)
}

func GetDashboardStats(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := services.DashboardStats(currentUser)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, stats)
}
