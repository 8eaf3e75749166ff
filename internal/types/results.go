package types

// Result records returned by the assignment and reporting services. Each
// operation has its own record so callers know exactly which fields exist;
// none of these are open maps.

// AssignmentChange describes one user touched by an assign or unassign batch.
type AssignmentChange struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Reactivated bool   `json:"reactivated,omitempty"`
}

// AssignmentError is a per-user failure captured inside a batch. The batch
// itself still commits whatever succeeded.
type AssignmentError struct {
	UserID uint   `json:"user_id"`
	Error  string `json:"error"`
}

type AssignOutcome struct {
	ProjectID       uint               `json:"project_id"`
	ProjectName     string             `json:"project_name"`
	Assigned        []AssignmentChange `json:"assigned"`
	AlreadyAssigned []AssignmentChange `json:"already_assigned"`
	Errors          []AssignmentError  `json:"errors"`
}

type UnassignOutcome struct {
	ProjectID   uint               `json:"project_id"`
	ProjectName string             `json:"project_name"`
	Unassigned  []AssignmentChange `json:"unassigned"`
	NotAssigned []AssignmentChange `json:"not_assigned"`
	Errors      []AssignmentError  `json:"errors"`
}

type AssignedUser struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// AssignmentRecord is one row of a project's assignment list.
type AssignmentRecord struct {
	ID           uint         `json:"id"`
	User         AssignedUser `json:"user"`
	AssignedBy   UserRef      `json:"assigned_by"`
	AssignedDate string       `json:"assigned_date"`
	IsActive     bool         `json:"is_active"`
	Notes        string       `json:"notes"`
}

type ProjectRef struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Client string  `json:"client"`
	Owner  UserRef `json:"owner"`
}

type AssignmentInfo struct {
	ID           uint    `json:"id"`
	AssignedBy   UserRef `json:"assigned_by"`
	AssignedDate string  `json:"assigned_date"`
	IsActive     bool    `json:"is_active"`
	Notes        string  `json:"notes"`
}

// UserProjectRecord is one row of a user's project list, seen from the user
// side of the assignment relation.
type UserProjectRecord struct {
	Project    ProjectRef     `json:"project"`
	Assignment AssignmentInfo `json:"assignment"`
}

type AssignmentCoverage struct {
	Projects float64 `json:"projects"`
	Users    float64 `json:"users"`
}

type AssignmentStats struct {
	TotalAssignments   int64              `json:"total_assignments"`
	TotalProjects      int64              `json:"total_projects"`
	TotalUsers         int64              `json:"total_users"`
	UnassignedProjects int64              `json:"unassigned_projects"`
	UnassignedUsers    int64              `json:"unassigned_users"`
	AssignmentCoverage AssignmentCoverage `json:"assignment_coverage"`
}

// ProjectHours is one sparse project-breakdown row; zero-hour projects are
// never included.
type ProjectHours struct {
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
}

type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type DailySummary struct {
	Date             string         `json:"date"`
	TotalHours       float64        `json:"total_hours"`
	ProjectBreakdown []ProjectHours `json:"project_breakdown"`
}

// WeeklySummary has a dense DailyBreakdown: exactly seven entries, Monday
// through Sunday, zero-hour days included.
type WeeklySummary struct {
	WeekStart        string         `json:"week_start"`
	WeekEnd          string         `json:"week_end"`
	TotalHours       float64        `json:"total_hours"`
	DailyBreakdown   []DayHours     `json:"daily_breakdown"`
	ProjectBreakdown []ProjectHours `json:"project_breakdown"`
}

// MonthlySummary has a dense DailyBreakdown: one entry per calendar day of
// the month.
type MonthlySummary struct {
	Month            string         `json:"month"`
	TotalHours       float64        `json:"total_hours"`
	DailyBreakdown   []DayHours     `json:"daily_breakdown"`
	ProjectBreakdown []ProjectHours `json:"project_breakdown"`
}

type UserHours struct {
	UserID uint    `json:"user_id"`
	Name   string  `json:"name"`
	Hours  float64 `json:"hours"`
}

type EntrySummary struct {
	ID       uint    `json:"id"`
	UserID   uint    `json:"user_id"`
	UserName string  `json:"user_name"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Note     string  `json:"note"`
}

type ProjectReport struct {
	Project       ProjectRef     `json:"project"`
	TotalHours    float64        `json:"total_hours"`
	UserBreakdown []UserHours    `json:"user_breakdown"`
	RecentEntries []EntrySummary `json:"recent_entries"`
}

type DashboardStats struct {
	TodayHours           float64 `json:"today_hours"`
	WeekHours            float64 `json:"week_hours"`
	MonthHours           float64 `json:"month_hours"`
	ActiveProjects       int64   `json:"active_projects"`
	AvgHoursPerDay       float64 `json:"avg_hours_per_day"`
	WorkingDaysThisMonth int64   `json:"working_days_this_month"`
}
