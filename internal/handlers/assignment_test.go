package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAssignEndpointFlow(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	alice := createUser(t, "Alice", "alice@example.com", "supersecret", false)
	bob := createUser(t, "Bob", "bob@example.com", "supersecret", false)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))

	adminToken := tokenFor(t, admin)
	aliceToken := tokenFor(t, alice)
	assignPath := fmt.Sprintf("/api/projects/%d/assign", project.ID)

	// Non-admins cannot assign.
	w := doRequest(t, r, http.MethodPost, assignPath, aliceToken, gin.H{
		"user_ids": []uint{bob.ID},
	})

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-admin assign, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, assignPath, adminToken, gin.H{
		"user_ids": []uint{alice.ID, bob.ID},
		"notes":    "Sprint 12",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on assign, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assigned := data["assigned"].([]interface{})

	if len(assigned) != 2 {
		t.Fatalf("Expected 2 assigned users, got %d", len(assigned))
	}

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/projects/%d/assignments", project.ID), adminToken, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on assignments list, got %d", w.Code)
	}

	records := decodeEnvelope(t, w)["data"].([]interface{})

	if len(records) != 2 {
		t.Fatalf("Expected 2 assignment records, got %d", len(records))
	}

	first := records[0].(map[string]interface{})

	if first["notes"] != "Sprint 12" {
		t.Errorf("Expected notes carried onto assignment, got %v", first["notes"])
	}

	// Unassign one, then the active list shrinks.
	w = doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/unassign", project.ID), adminToken, gin.H{
			"user_ids": []uint{bob.ID},
		})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on unassign, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/projects/%d/assignments", project.ID), adminToken, nil)

	records = decodeEnvelope(t, w)["data"].([]interface{})

	if len(records) != 1 {
		t.Fatalf("Expected 1 active assignment after unassign, got %d", len(records))
	}

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/projects/%d/assignments?include_inactive=true", project.ID), adminToken, nil)

	records = decodeEnvelope(t, w)["data"].([]interface{})

	if len(records) != 2 {
		t.Fatalf("Expected 2 records with include_inactive, got %d", len(records))
	}
}

func TestAssignEndpointUnknownProject(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	alice := createUser(t, "Alice", "alice@example.com", "supersecret", false)

	w := doRequest(t, r, http.MethodPost, "/api/projects/9999/assign", tokenFor(t, admin), gin.H{
		"user_ids": []uint{alice.ID},
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown project, got %d", w.Code)
	}
}

func TestAssignEndpointRejectsMissingBody(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	project := createProject(t, "Website", admin.ID, nil, nil)

	w := doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/assign", project.ID), tokenFor(t, admin), gin.H{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing user_ids, got %d", w.Code)
	}
}

func TestAssignmentStatsEndpointRequiresAdmin(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@example.com", "supersecret", true)
	alice := createUser(t, "Alice", "alice@example.com", "supersecret", false)

	w := doRequest(t, r, http.MethodGet, "/api/assignments/stats", tokenFor(t, alice), nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-admin stats, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/assignments/stats", tokenFor(t, admin), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin stats, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	if _, ok := data["assignment_coverage"]; !ok {
		t.Errorf("Expected assignment_coverage in stats, got %v", data)
	}
}
