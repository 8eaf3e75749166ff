package services

import (
	"testing"
	"time"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
)

func TestLogHoursUpsertReplacesInPlace(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	alice := createUser(t, "Alice", "alice@example.com", false)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.January, 31))

	if _, err := AssignUsers(project.ID, []uint{alice.ID}, asCaller(admin), ""); err != nil {
		t.Fatalf("AssignUsers failed: %v", err)
	}

	day := date(2024, time.January, 15)

	if _, err := LogHours(asCaller(alice), project.ID, day, 3, "first pass"); err != nil {
		t.Fatalf("First LogHours failed: %v", err)
	}

	entry, err := LogHours(asCaller(alice), project.ID, day, 5, "corrected")

	if err != nil {
		t.Fatalf("Second LogHours failed: %v", err)
	}

	if entry.Hours != 5 || entry.Note != "corrected" {
		t.Errorf("Expected replacement with hours=5, got hours=%v note=%q", entry.Hours, entry.Note)
	}

	var count int64

	if err := db.DB.Model(&models.HourEntry{}).
		Where("user_id = ? AND project_id = ?", alice.ID, project.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected exactly 1 entry row, got %d", count)
	}
}

func TestLogHoursOutsideWindow(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	project := createProject(t, "January Sprint", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.January, 31))

	_, err := LogHours(asCaller(admin), project.ID, date(2024, time.February, 1), 4, "")

	if !IsValidation(err) {
		t.Fatalf("Expected Validation for a date past the window, got %v", err)
	}

	// Both window bounds are inclusive.
	if _, err := LogHours(asCaller(admin), project.ID, date(2024, time.January, 31), 4, ""); err != nil {
		t.Errorf("Expected end date to be loggable, got %v", err)
	}

	if _, err := LogHours(asCaller(admin), project.ID, date(2024, time.January, 1), 4, ""); err != nil {
		t.Errorf("Expected start date to be loggable, got %v", err)
	}
}

func TestLogHoursRequiresWindow(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	project := createProject(t, "Undated", admin.ID, datePtr(2024, time.January, 1), nil)

	_, err := LogHours(asCaller(admin), project.ID, date(2024, time.January, 2), 4, "")

	if !IsValidation(err) {
		t.Fatalf("Expected Validation for a project without a window, got %v", err)
	}
}

func TestLogHoursAccessControl(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	owner := createUser(t, "Owner", "owner@example.com", false)
	alice := createUser(t, "Alice", "alice@example.com", false)
	mallory := createUser(t, "Mallory", "mallory@example.com", false)
	project := createProject(t, "Website", owner.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))

	day := date(2024, time.June, 10)

	if _, err := LogHours(asCaller(mallory), project.ID, day, 2, ""); !IsPermissionDenied(err) {
		t.Fatalf("Expected PermissionDenied for unassigned user, got %v", err)
	}

	if _, err := LogHours(asCaller(owner), project.ID, day, 2, ""); err != nil {
		t.Errorf("Expected owner to log hours, got %v", err)
	}

	if _, err := LogHours(asCaller(admin), project.ID, day, 2, ""); err != nil {
		t.Errorf("Expected admin to log hours, got %v", err)
	}

	if _, err := AssignUsers(project.ID, []uint{alice.ID}, asCaller(admin), ""); err != nil {
		t.Fatalf("AssignUsers failed: %v", err)
	}

	if _, err := LogHours(asCaller(alice), project.ID, day, 2, ""); err != nil {
		t.Errorf("Expected active assignee to log hours, got %v", err)
	}

	// An inactive assignment grants nothing.
	if _, err := UnassignUsers(project.ID, []uint{alice.ID}, asCaller(admin)); err != nil {
		t.Fatalf("UnassignUsers failed: %v", err)
	}

	if _, err := LogHours(asCaller(alice), project.ID, date(2024, time.June, 11), 2, ""); !IsPermissionDenied(err) {
		t.Errorf("Expected PermissionDenied after unassignment, got %v", err)
	}
}

func TestLogHoursRejectsUnreasonableHours(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))

	if _, err := LogHours(asCaller(admin), project.ID, date(2024, time.June, 1), 0, ""); !IsValidation(err) {
		t.Errorf("Expected Validation for zero hours, got %v", err)
	}

	if _, err := LogHours(asCaller(admin), project.ID, date(2024, time.June, 1), 25, ""); !IsValidation(err) {
		t.Errorf("Expected Validation for 25 hours, got %v", err)
	}
}

func TestUpdateEntryGuardsAndCollisions(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	alice := createUser(t, "Alice", "alice@example.com", false)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))

	if _, err := AssignUsers(project.ID, []uint{alice.ID}, asCaller(admin), ""); err != nil {
		t.Fatalf("AssignUsers failed: %v", err)
	}

	first, err := LogHours(asCaller(alice), project.ID, date(2024, time.June, 1), 4, "")

	if err != nil {
		t.Fatalf("LogHours failed: %v", err)
	}

	second, err := LogHours(asCaller(alice), project.ID, date(2024, time.June, 2), 6, "")

	if err != nil {
		t.Fatalf("LogHours failed: %v", err)
	}

	// Moving onto an occupied day is a conflict, not a merge.
	if _, err := UpdateEntry(asCaller(alice), second.ID, date(2024, time.June, 1), 6, ""); !IsValidation(err) {
		t.Fatalf("Expected Validation moving onto an occupied day, got %v", err)
	}

	// The window still applies on update.
	if _, err := UpdateEntry(asCaller(alice), first.ID, date(2025, time.January, 1), 4, ""); !IsValidation(err) {
		t.Fatalf("Expected Validation for out-of-window update, got %v", err)
	}

	updated, err := UpdateEntry(asCaller(alice), first.ID, date(2024, time.June, 3), 7, "moved")

	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}

	if updated.Hours != 7 || !dateOnly(updated.Date).Equal(date(2024, time.June, 3)) {
		t.Errorf("Expected entry moved to June 3 with 7 hours, got %+v", updated)
	}
}

func TestDeleteEntryPermissions(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	alice := createUser(t, "Alice", "alice@example.com", false)
	bob := createUser(t, "Bob", "bob@example.com", false)
	project := createProject(t, "Website", admin.ID,
		datePtr(2024, time.January, 1), datePtr(2024, time.December, 31))

	if _, err := AssignUsers(project.ID, []uint{alice.ID}, asCaller(admin), ""); err != nil {
		t.Fatalf("AssignUsers failed: %v", err)
	}

	entry, err := LogHours(asCaller(alice), project.ID, date(2024, time.June, 1), 4, "")

	if err != nil {
		t.Fatalf("LogHours failed: %v", err)
	}

	if err := DeleteEntry(asCaller(bob), entry.ID); !IsPermissionDenied(err) {
		t.Fatalf("Expected PermissionDenied for another user's entry, got %v", err)
	}

	if err := DeleteEntry(asCaller(alice), entry.ID); err != nil {
		t.Fatalf("DeleteEntry failed for owner: %v", err)
	}

	if err := DeleteEntry(asCaller(alice), entry.ID); !IsNotFound(err) {
		t.Errorf("Expected NotFound for deleted entry, got %v", err)
	}
}

func TestAccessibleProjectIDs(t *testing.T) {
	setupTestDB(t)

	admin := createUser(t, "Admin", "admin@example.com", true)
	alice := createUser(t, "Alice", "alice@example.com", false)

	owned := createProject(t, "Owned", alice.ID, nil, nil)
	assigned := createProject(t, "Assigned", admin.ID, nil, nil)
	createProject(t, "Unrelated", admin.ID, nil, nil)

	if _, err := AssignUsers(assigned.ID, []uint{alice.ID}, asCaller(admin), ""); err != nil {
		t.Fatalf("AssignUsers failed: %v", err)
	}

	ids, err := AccessibleProjectIDs(alice.ID)

	if err != nil {
		t.Fatalf("AccessibleProjectIDs failed: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("Expected 2 accessible projects, got %v", ids)
	}

	want := map[uint]bool{owned.ID: true, assigned.ID: true}

	for _, id := range ids {
		if !want[id] {
			t.Errorf("Unexpected accessible project %d", id)
		}
	}
}
