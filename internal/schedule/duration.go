package schedule

import "time"

// The booking forms offer a fixed menu of stay lengths.
var Durations = []Duration{
	{Label: "1 hour", Length: time.Hour},
	{Label: "1.5 hours", Length: 90 * time.Minute},
	{Label: "2 hours", Length: 2 * time.Hour},
	{Label: "2.5 hours", Length: 150 * time.Minute},
	{Label: "3 hours", Length: 3 * time.Hour},
}

type Duration struct {
	Label  string
	Length time.Duration
}

// DurationByLabel returns the enumerated duration for a menu label, falling
// back to 2 hours for anything unknown.
func DurationByLabel(label string) Duration {
	for _, d := range Durations {
		if d.Label == label {
			return d
		}
	}
	return Durations[2]
}

// ClassifyDuration buckets the gap between start and end into the nearest
// enumerated duration. The thresholds sit halfway between neighbouring menu
// entries, so this is a lossy classification: only the five canonical lengths
// survive a round trip through it.
func ClassifyDuration(start, end time.Time) Duration {
	hours := end.Sub(start).Hours()

	switch {
	case hours <= 1.25:
		return Durations[0]
	case hours <= 1.75:
		return Durations[1]
	case hours <= 2.25:
		return Durations[2]
	case hours <= 2.75:
		return Durations[3]
	default:
		return Durations[4]
	}
}
