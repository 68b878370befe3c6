package schedule

// TimeSlots generates the bookable 30-minute slot labels between opening and
// closing time, opening inclusive and closing exclusive. An opening time that
// is not on a half-hour boundary skips forward to the next one; an exact
// half-hour open ("11:30 AM") is kept as the first slot. Unparseable hours
// fall back to a 9:00 open, matching how the booking forms behave when a
// restaurant record carries garbage.
func TimeSlots(openTime, closeTime string) []string {
	open, err := ParseClockTime(openTime)
	if err != nil {
		open = ClockTime{Hour: 9}
	}
	close, err := ParseClockTime(closeTime)
	if err != nil {
		close = ClockTime{Hour: 9}
	}

	var slots []string
	for hour := open.Hour; hour < close.Hour; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			if hour == open.Hour && minute < open.Minute {
				continue
			}
			slots = append(slots, ClockTime{Hour: hour, Minute: minute}.Label())
		}
	}

	return slots
}
