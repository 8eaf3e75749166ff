package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/types"
	"gorm.io/gorm"
)

// entryScope restricts a report query to the entries the caller may see:
// non-admins always see their own entries, admins see everything unless they
// narrow the scope to one user.
func entryScope(caller types.AuthenticatedUser, scopeUser *uint) (*gorm.DB, error) {
	query := db.DB.Model(&models.HourEntry{})

	if !caller.IsAdmin {
		if scopeUser != nil && *scopeUser != caller.ID {
			return nil, &PermissionDeniedError{Message: "Only admins can view other users' time entries"}
		}

		return query.Where("user_id = ?", caller.ID), nil
	}

	if scopeUser != nil {
		query = query.Where("user_id = ?", *scopeUser)
	}

	return query, nil
}

// DailySummary aggregates hours for one day. The project breakdown is sparse:
// only projects with nonzero hours appear, largest first.
func DailySummary(caller types.AuthenticatedUser, date time.Time, scopeUser *uint) (*types.DailySummary, error) {
	query, err := entryScope(caller, scopeUser)

	if err != nil {
		return nil, err
	}

	day := dateOnly(date)
	var entries []models.HourEntry

	if err := query.Preload("Project").Where("date = ?", day).Find(&entries).Error; err != nil {
		return nil, err
	}

	summary := &types.DailySummary{
		Date:             day.Format(DateFormat),
		ProjectBreakdown: projectBreakdown(entries),
	}

	for _, entry := range entries {
		summary.TotalHours += entry.Hours
	}

	return summary, nil
}

// WeeklySummary aggregates a Monday-to-Sunday week. Any date within the week
// is accepted and normalized to its Monday. The daily breakdown is dense:
// exactly seven entries, zero-hour days included.
func WeeklySummary(caller types.AuthenticatedUser, week time.Time, scopeUser *uint) (*types.WeeklySummary, error) {
	query, err := entryScope(caller, scopeUser)

	if err != nil {
		return nil, err
	}

	weekStart := mondayOf(week)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var entries []models.HourEntry

	if err := query.Preload("Project").
		Where("date >= ? AND date <= ?", weekStart, weekEnd).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	summary := &types.WeeklySummary{
		WeekStart:        weekStart.Format(DateFormat),
		WeekEnd:          weekEnd.Format(DateFormat),
		DailyBreakdown:   denseDailyBreakdown(entries, weekStart, 7),
		ProjectBreakdown: projectBreakdown(entries),
	}

	for _, day := range summary.DailyBreakdown {
		summary.TotalHours += day.Hours
	}

	return summary, nil
}

// MonthlySummary aggregates one calendar month. The daily breakdown has one
// entry per day of that month, including leap-year Februaries and the
// December boundary.
func MonthlySummary(caller types.AuthenticatedUser, year int, month time.Month, scopeUser *uint) (*types.MonthlySummary, error) {
	query, err := entryScope(caller, scopeUser)

	if err != nil {
		return nil, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	var entries []models.HourEntry

	if err := query.Preload("Project").
		Where("date >= ? AND date <= ?", monthStart, monthEnd).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	summary := &types.MonthlySummary{
		Month:            monthStart.Format(MonthFormat),
		DailyBreakdown:   denseDailyBreakdown(entries, monthStart, daysInMonth),
		ProjectBreakdown: projectBreakdown(entries),
	}

	for _, day := range summary.DailyBreakdown {
		summary.TotalHours += day.Hours
	}

	return summary, nil
}

// ProjectTimeReport aggregates a project's entries per contributing user and
// returns up to the ten most recent entries. Only admins, the project owner,
// or active assignees may read it.
func ProjectTimeReport(projectID uint, from, to *time.Time, caller types.AuthenticatedUser) (*types.ProjectReport, error) {
	var project models.Project

	if err := db.DB.Preload("Owner").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Project with ID %d does not exist", projectID)}
		}
		return nil, err
	}

	if err := checkProjectAccess(caller, &project); err != nil {
		return nil, err
	}

	query := db.DB.Preload("User").Where("project_id = ?", project.ID)

	if from != nil {
		query = query.Where("date >= ?", dateOnly(*from))
	}

	if to != nil {
		query = query.Where("date <= ?", dateOnly(*to))
	}

	var entries []models.HourEntry

	if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	report := &types.ProjectReport{
		Project: types.ProjectRef{
			ID:     project.ID,
			Name:   project.Name,
			Client: project.Client,
			Owner: types.UserRef{
				ID:    project.Owner.ID,
				Name:  project.Owner.Name,
				Email: project.Owner.Email,
			},
		},
		UserBreakdown: []types.UserHours{},
		RecentEntries: []types.EntrySummary{},
	}

	perUser := make(map[uint]*types.UserHours)

	for _, entry := range entries {
		report.TotalHours += entry.Hours

		row, ok := perUser[entry.UserID]
		if !ok {
			row = &types.UserHours{UserID: entry.UserID, Name: entry.User.Name}
			perUser[entry.UserID] = row
		}
		row.Hours += entry.Hours

		if len(report.RecentEntries) < 10 {
			report.RecentEntries = append(report.RecentEntries, types.EntrySummary{
				ID:       entry.ID,
				UserID:   entry.UserID,
				UserName: entry.User.Name,
				Date:     entry.Date.Format(DateFormat),
				Hours:    entry.Hours,
				Note:     entry.Note,
			})
		}
	}

	for _, row := range perUser {
		report.UserBreakdown = append(report.UserBreakdown, *row)
	}

	sort.Slice(report.UserBreakdown, func(i, j int) bool {
		if report.UserBreakdown[i].Hours != report.UserBreakdown[j].Hours {
			return report.UserBreakdown[i].Hours > report.UserBreakdown[j].Hours
		}
		return report.UserBreakdown[i].UserID < report.UserBreakdown[j].UserID
	})

	return report, nil
}

// DashboardStats summarizes the caller's own recent activity: totals for
// today, the current week, and the current month.
func DashboardStats(caller types.AuthenticatedUser) (*types.DashboardStats, error) {
	now := time.Now()
	today := dateOnly(now)
	weekStart := mondayOf(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	rangeStart := monthStart
	if weekStart.Before(rangeStart) {
		rangeStart = weekStart
	}

	var entries []models.HourEntry

	if err := db.DB.Where("user_id = ? AND date >= ? AND date <= ?", caller.ID, rangeStart, today).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	stats := &types.DashboardStats{}
	projects := make(map[uint]bool)
	workingDays := make(map[string]bool)

	for _, entry := range entries {
		day := dateOnly(entry.Date)

		if day.Equal(today) {
			stats.TodayHours += entry.Hours
		}

		if !day.Before(weekStart) {
			stats.WeekHours += entry.Hours
		}

		if !day.Before(monthStart) {
			stats.MonthHours += entry.Hours
			projects[entry.ProjectID] = true
			workingDays[day.Format(DateFormat)] = true
		}
	}

	stats.ActiveProjects = int64(len(projects))
	stats.WorkingDaysThisMonth = int64(len(workingDays))

	divisor := stats.WorkingDaysThisMonth
	if divisor == 0 {
		divisor = 1
	}

	stats.AvgHoursPerDay = math.Round(stats.MonthHours/float64(divisor)*10) / 10

	return stats, nil
}

func denseDailyBreakdown(entries []models.HourEntry, start time.Time, days int) []types.DayHours {
	totals := make(map[string]float64, len(entries))

	for _, entry := range entries {
		totals[dateOnly(entry.Date).Format(DateFormat)] += entry.Hours
	}

	breakdown := make([]types.DayHours, 0, days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(DateFormat)
		breakdown = append(breakdown, types.DayHours{Date: date, Hours: totals[date]})
	}

	return breakdown
}

func projectBreakdown(entries []models.HourEntry) []types.ProjectHours {
	perProject := make(map[uint]*types.ProjectHours)

	for _, entry := range entries {
		row, ok := perProject[entry.ProjectID]
		if !ok {
			row = &types.ProjectHours{ProjectID: entry.ProjectID, ProjectName: entry.Project.Name}
			perProject[entry.ProjectID] = row
		}
		row.Hours += entry.Hours
	}

	breakdown := make([]types.ProjectHours, 0, len(perProject))

	for _, row := range perProject {
		if row.Hours > 0 {
			breakdown = append(breakdown, *row)
		}
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Hours != breakdown[j].Hours {
			return breakdown[i].Hours > breakdown[j].Hours
		}
		return breakdown[i].ProjectID < breakdown[j].ProjectID
	})

	return breakdown
}
