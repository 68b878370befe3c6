package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadClockTime = errors.New("unrecognized time format")

// ClockTime is a time of day in 24-hour terms.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime accepts the two formats restaurant hours arrive in:
// decimal hours like "10.00" and 12-hour labels like "10:00 AM".
// "12 AM" maps to hour 0; "12 PM" stays 12; other PM hours gain 12.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, ".") {
		parts := strings.SplitN(s, ".", 2)
		hour, err := strconv.Atoi(parts[0])
		if err != nil {
			return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
		}
		minute, err := strconv.Atoi(parts[1])
		if err != nil {
			return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
		}
		return ClockTime{Hour: hour, Minute: minute}, nil
	}

	if strings.Contains(s, ":") {
		fields := strings.Fields(s)
		hm := strings.SplitN(fields[0], ":", 2)
		if len(hm) != 2 {
			return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
		}

		hour, err := strconv.Atoi(hm[0])
		if err != nil {
			return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
		}
		minute, err := strconv.Atoi(hm[1])
		if err != nil {
			return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
		}

		if len(fields) > 1 {
			switch strings.ToUpper(fields[1]) {
			case "PM":
				if hour < 12 {
					hour += 12
				}
			case "AM":
				if hour == 12 {
					hour = 0
				}
			}
		}

		return ClockTime{Hour: hour, Minute: minute}, nil
	}

	return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
}

// Label renders the 12-hour form used throughout the UI, e.g. "12:30 PM".
func (c ClockTime) Label() string {
	hour := c.Hour
	switch {
	case hour > 12:
		hour -= 12
	case hour == 0:
		hour = 12
	}

	period := "AM"
	if c.Hour >= 12 {
		period = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, period)
}
