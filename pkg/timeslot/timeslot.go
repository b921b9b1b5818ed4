package timeslot

import (
	"fmt"
	"time"
)

// ClockTime adalah wall-clock time dalam menit sejak tengah malam (0..1439)
type ClockTime int

const MinutesPerDay = 24 * 60

// ParseClock parses "15:04" format into ClockTime
func ParseClock(value string) (ClockTime, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", value, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String formats ClockTime back to "15:04"
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Minutes returns raw minutes since midnight
func (c ClockTime) Minutes() int {
	return int(c)
}

// ComputeEnd adds durasi (whole hours, minimum 1) to start time.
// spansMidnight is true iff the resulting date differs from the input date.
func ComputeEnd(date time.Time, start ClockTime, hours int) (end ClockTime, endDate time.Time, spansMidnight bool) {
	if hours < 1 {
		hours = 1
	}

	total := int(start) + hours*60
	end = ClockTime(total % MinutesPerDay)
	days := total / MinutesPerDay
	endDate = date.AddDate(0, 0, days)
	spansMidnight = days > 0

	return end, endDate, spansMidnight
}

// Overlaps tests two half-open intervals [aStart, aEnd) and [bStart, bEnd).
// Touching endpoints (aEnd == bStart) do NOT overlap.
func Overlaps(aStart, aEnd, bStart, bEnd ClockTime) bool {
	return aStart < bEnd && bStart < aEnd
}
