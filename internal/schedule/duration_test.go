package schedule

import (
	"testing"
	"time"
)

func TestClassifyDuration_CanonicalFixedPoints(t *testing.T) {
	start := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

	for _, d := range Durations {
		got := ClassifyDuration(start, start.Add(d.Length))
		if got.Label != d.Label {
			t.Errorf("expected '%s' to classify as itself, got '%s'", d.Label, got.Label)
		}
	}
}

func TestClassifyDuration_Thresholds(t *testing.T) {
	start := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		gap   time.Duration
		label string
	}{
		{30 * time.Minute, "1 hour"},
		{75 * time.Minute, "1 hour"},
		{76 * time.Minute, "1.5 hours"},
		{105 * time.Minute, "1.5 hours"},
		{106 * time.Minute, "2 hours"},
		{135 * time.Minute, "2 hours"},
		{136 * time.Minute, "2.5 hours"},
		{165 * time.Minute, "2.5 hours"},
		{166 * time.Minute, "3 hours"},
		{5 * time.Hour, "3 hours"},
	}

	for _, c := range cases {
		got := ClassifyDuration(start, start.Add(c.gap))
		if got.Label != c.label {
			t.Errorf("gap %v: expected '%s', got '%s'", c.gap, c.label, got.Label)
		}
	}
}

func TestDurationByLabel(t *testing.T) {
	if d := DurationByLabel("1.5 hours"); d.Length != 90*time.Minute {
		t.Errorf("expected 90m, got %v", d.Length)
	}

	// Unknown labels fall back to the 2-hour default.
	if d := DurationByLabel("45 minutes"); d.Label != "2 hours" {
		t.Errorf("expected fallback '2 hours', got '%s'", d.Label)
	}
}
