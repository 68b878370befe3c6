package schedule

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/NasmeenI/tablebook/internal/models"
)

var testRestaurant = &models.Restaurant{
	ID:        "r1",
	Name:      "Bella Italia",
	Type:      "Italian",
	OpenTime:  "11:00 AM",
	CloseTime: "10:00 PM",
	MaxSeats:  50,
}

func TestBuild_Valid(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	req, err := Build(now, testRestaurant, date, "6:00 PM", "2 hours", 4, "window seat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Seats != 4 {
		t.Errorf("expected 4 seats, got %d", req.Seats)
	}
	if req.SpecialRequests != "window seat" {
		t.Errorf("expected special requests to be preserved, got '%s'", req.SpecialRequests)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		t.Fatalf("start time not RFC3339: %v", err)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		t.Fatalf("end time not RFC3339: %v", err)
	}

	if start.Hour() != 18 || start.Minute() != 0 {
		t.Errorf("expected start at 18:00, got %v", start)
	}
	if got := end.Sub(start); got != 2*time.Hour {
		t.Errorf("expected 2h between start and end, got %v", got)
	}
	if !end.After(start) {
		t.Error("end must be after start")
	}
}

func TestBuild_PastStartRejected(t *testing.T) {
	now := time.Date(2026, time.March, 14, 19, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	_, err := Build(now, testRestaurant, date, "6:00 PM", "2 hours", 2, "")
	if !errors.Is(err, ErrPastStart) {
		t.Fatalf("expected ErrPastStart, got %v", err)
	}
}

func TestBuild_StartEqualToNowRejected(t *testing.T) {
	now := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	// Start must be strictly after now.
	_, err := Build(now, testRestaurant, date, "6:00 PM", "2 hours", 2, "")
	if !errors.Is(err, ErrPastStart) {
		t.Fatalf("expected ErrPastStart, got %v", err)
	}
}

func TestBuild_OverCapacityNamesMaximum(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	_, err := Build(now, testRestaurant, date, "6:00 PM", "2 hours", 51, "")

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if capErr.MaxSeats != 50 {
		t.Errorf("expected MaxSeats 50, got %d", capErr.MaxSeats)
	}

	want := fmt.Sprintf("up to %d guests", testRestaurant.MaxSeats)
	if msg := capErr.Error(); !strings.Contains(msg, want) {
		t.Errorf("expected message naming the maximum, got '%s'", msg)
	}
}

func TestBuild_SeatsAtCapacityAllowed(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	if _, err := Build(now, testRestaurant, date, "6:00 PM", "2 hours", 50, ""); err != nil {
		t.Fatalf("expected seats == maxSeats to be accepted, got %v", err)
	}
}

func TestBuild_InvalidInputs(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	if _, err := Build(now, nil, date, "6:00 PM", "2 hours", 2, ""); !errors.Is(err, ErrNoRestaurant) {
		t.Errorf("expected ErrNoRestaurant, got %v", err)
	}
	if _, err := Build(now, testRestaurant, date, "", "2 hours", 2, ""); !errors.Is(err, ErrMissingSlot) {
		t.Errorf("expected ErrMissingSlot, got %v", err)
	}
	if _, err := Build(now, testRestaurant, date, "6:00 PM", "2 hours", 0, ""); !errors.Is(err, ErrNoSeats) {
		t.Errorf("expected ErrNoSeats, got %v", err)
	}
}
