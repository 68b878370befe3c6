package schedule

import (
	"testing"
)

func TestTimeSlots_FullDay(t *testing.T) {
	slots := TimeSlots("9:00 AM", "5:00 PM")

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0] != "9:00 AM" {
		t.Errorf("expected first slot '9:00 AM', got '%s'", slots[0])
	}
	if slots[len(slots)-1] != "4:30 PM" {
		t.Errorf("expected last slot '4:30 PM', got '%s'", slots[len(slots)-1])
	}
}

func TestTimeSlots_HalfHourOpen(t *testing.T) {
	slots := TimeSlots("11:30 AM", "1:00 PM")

	expected := []string{"11:30 AM", "12:00 PM", "12:30 PM"}
	if len(slots) != len(expected) {
		t.Fatalf("expected %d slots, got %d: %v", len(expected), len(slots), slots)
	}
	for i, want := range expected {
		if slots[i] != want {
			t.Errorf("slot %d: expected '%s', got '%s'", i, want, slots[i])
		}
	}
}

func TestTimeSlots_DecimalFormat(t *testing.T) {
	slots := TimeSlots("10.00", "12.00")

	expected := []string{"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM"}
	if len(slots) != len(expected) {
		t.Fatalf("expected %d slots, got %d: %v", len(expected), len(slots), slots)
	}
	for i, want := range expected {
		if slots[i] != want {
			t.Errorf("slot %d: expected '%s', got '%s'", i, want, slots[i])
		}
	}
}

func TestTimeSlots_PartialOpenSkipsForward(t *testing.T) {
	// 10:15 is not on a half-hour boundary; the first slot is 10:30.
	slots := TimeSlots("10.15", "12.00")

	if len(slots) == 0 {
		t.Fatal("expected slots, got none")
	}
	if slots[0] != "10:30 AM" {
		t.Errorf("expected first slot '10:30 AM', got '%s'", slots[0])
	}
}

func TestTimeSlots_StrictlyIncreasing(t *testing.T) {
	cases := [][2]string{
		{"9:00 AM", "5:00 PM"},
		{"11:30 AM", "1:00 PM"},
		{"10:00 AM", "10:00 PM"},
		{"12:00 AM", "12:00 PM"},
	}

	for _, c := range cases {
		open, _ := ParseClockTime(c[0])
		close, _ := ParseClockTime(c[1])

		slots := TimeSlots(c[0], c[1])
		prev := -1
		for _, s := range slots {
			ct, err := ParseClockTime(s)
			if err != nil {
				t.Fatalf("%v: slot '%s' failed to parse back: %v", c, s, err)
			}

			minutes := ct.Hour*60 + ct.Minute
			if prev >= 0 && minutes-prev != 30 {
				t.Errorf("%v: slots not 30 minutes apart at '%s'", c, s)
			}
			prev = minutes

			if minutes < open.Hour*60+open.Minute {
				t.Errorf("%v: slot '%s' before opening time", c, s)
			}
			if minutes >= close.Hour*60+close.Minute {
				t.Errorf("%v: slot '%s' at or past closing time", c, s)
			}
		}
	}
}

func TestTimeSlots_ClosedRange(t *testing.T) {
	if slots := TimeSlots("5:00 PM", "5:00 PM"); len(slots) != 0 {
		t.Errorf("expected no slots for zero-width hours, got %v", slots)
	}
}

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
	}{
		{"10.00", 10, 0},
		{"22.30", 22, 30},
		{"10:00 AM", 10, 0},
		{"10:00 PM", 22, 0},
		{"12:00 AM", 0, 0},
		{"12:00 PM", 12, 0},
		{"12:30 am", 0, 30},
		{"7:30 pm", 19, 30},
	}

	for _, c := range cases {
		got, err := ParseClockTime(c.in)
		if err != nil {
			t.Errorf("ParseClockTime(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got.Hour != c.hour || got.Minute != c.minute {
			t.Errorf("ParseClockTime(%q) = %d:%02d, expected %d:%02d", c.in, got.Hour, got.Minute, c.hour, c.minute)
		}
	}
}

func TestParseClockTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "noon", "25", "a:b PM"} {
		if _, err := ParseClockTime(in); err == nil {
			t.Errorf("ParseClockTime(%q): expected error, got none", in)
		}
	}
}

func TestClockTimeLabel_Midnight(t *testing.T) {
	if got := (ClockTime{Hour: 0, Minute: 30}).Label(); got != "12:30 AM" {
		t.Errorf("expected '12:30 AM', got '%s'", got)
	}
	if got := (ClockTime{Hour: 12, Minute: 0}).Label(); got != "12:00 PM" {
		t.Errorf("expected '12:00 PM', got '%s'", got)
	}
}
