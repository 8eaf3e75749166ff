package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func logEntry(t *testing.T, r *gin.Engine, token string, projectID uint, date string, hours float64) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/hours", token, gin.H{
		"project_id": projectID,
		"date":       date,
		"hours":      hours,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Failed to log %v hours on %s: %d %s", hours, date, w.Code, w.Body.String())
	}
}

func TestWeeklySummaryEndpoint(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))
	token := tokenFor(t, admin)

	logEntry(t, r, token, project.ID, "2024-01-01", 4)
	logEntry(t, r, token, project.ID, "2024-01-03", 6)

	w := doRequest(t, r, http.MethodGet, "/api/time/weekly?week=2024-01-03", token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	if data["week_start"] != "2024-01-01" || data["week_end"] != "2024-01-07" {
		t.Errorf("Expected week 2024-01-01..2024-01-07, got %v..%v", data["week_start"], data["week_end"])
	}

	if data["total_hours"].(float64) != 10 {
		t.Errorf("Expected 10 total hours, got %v", data["total_hours"])
	}

	breakdown := data["daily_breakdown"].([]interface{})

	if len(breakdown) != 7 {
		t.Fatalf("Expected dense 7-day breakdown, got %d", len(breakdown))
	}
}

func TestMonthlySummaryEndpoint(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodGet, "/api/time/monthly?month=2024-02", token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	breakdown := data["daily_breakdown"].([]interface{})

	if len(breakdown) != 29 {
		t.Fatalf("Expected 29 days for 2024-02, got %d", len(breakdown))
	}

	w = doRequest(t, r, http.MethodGet, "/api/time/monthly?month=February", token, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed month, got %d", w.Code)
	}
}

func TestDailySummaryEndpointScoping(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	alice := createUser(t, "Alice", "alice@example.com", "supersecret", false)
	bob := createUser(t, "Bob", "bob@example.com", "supersecret", false)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))

	adminToken := tokenFor(t, admin)
	aliceToken := tokenFor(t, alice)

	w := doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/assign", project.ID), adminToken, gin.H{
			"user_ids": []uint{alice.ID, bob.ID},
		})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on assign, got %d", w.Code)
	}

	logEntry(t, r, aliceToken, project.ID, "2024-06-10", 3)
	logEntry(t, r, tokenFor(t, bob), project.ID, "2024-06-10", 4)

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/time/daily?date=2024-06-10&user=%d", bob.ID), aliceToken, nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 scoping another user, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/time/daily?date=2024-06-10", aliceToken, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	if data["total_hours"].(float64) != 3 {
		t.Errorf("Expected alice's own 3 hours, got %v", data["total_hours"])
	}

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/time/daily?date=2024-06-10&user=%d", bob.ID), adminToken, nil)

	data = decodeEnvelope(t, w)["data"].(map[string]interface{})

	if data["total_hours"].(float64) != 4 {
		t.Errorf("Expected bob's 4 hours under admin scope, got %v", data["total_hours"])
	}
}

func TestProjectTimeReportEndpoint(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	mallory := createUser(t, "Mallory", "mallory@example.com", "supersecret", false)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))
	token := tokenFor(t, admin)

	logEntry(t, r, token, project.ID, "2024-06-10", 3)
	logEntry(t, r, token, project.ID, "2024-06-11", 5)

	path := fmt.Sprintf("/api/projects/%d/time-report", project.ID)

	w := doRequest(t, r, http.MethodGet, path, tokenFor(t, mallory), nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for outsider, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, path, token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	if data["total_hours"].(float64) != 8 {
		t.Errorf("Expected 8 total hours, got %v", data["total_hours"])
	}

	w = doRequest(t, r, http.MethodGet, path+"?start_date=2024-06-11&end_date=2024-06-10", token, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for inverted range, got %d", w.Code)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	today := time.Now().UTC()
	start := today.AddDate(0, -1, 0)
	end := today.AddDate(0, 1, 0)
	project := createProject(t, "Website", admin.ID, &start, &end)
	token := tokenFor(t, admin)

	logEntry(t, r, token, project.ID, today.Format("2006-01-02"), 5)

	w := doRequest(t, r, http.MethodGet, "/api/dashboard/stats", token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	if data["today_hours"].(float64) != 5 {
		t.Errorf("Expected 5 hours today, got %v", data["today_hours"])
	}

	if data["working_days_this_month"].(float64) != 1 {
		t.Errorf("Expected 1 working day, got %v", data["working_days_this_month"])
	}
}
