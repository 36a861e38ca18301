package shiftsat

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day, and the modulus
// used throughout the compiler for time-of-day arithmetic.
const MinutesPerDay = 24 * 60

var daysOfWeek = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// timeOfDayMinutes converts a clock time to minutes since midnight, in
// [0, MinutesPerDay).
func timeOfDayMinutes(hours, minutes int) (int, error) {
	if hours < 0 || hours > 23 {
		return 0, fmt.Errorf("shiftsat: hour %d out of range [0,23]", hours)
	}
	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("shiftsat: minute %d out of range [0,59]", minutes)
	}
	return hours*60 + minutes, nil
}

// normalizeEndMinutes returns the end-of-shift minute value in the same
// coordinate space as start, treating endRaw <= start as an overnight shift
// that wraps past midnight. The returned value never exceeds 2*MinutesPerDay-1.
func normalizeEndMinutes(start, endRaw int) int {
	if endRaw <= start {
		return endRaw + MinutesPerDay
	}
	return endRaw
}

// isOvernight reports whether a normalized [start, end) interval spans past
// midnight into the following day.
func isOvernight(end int) bool {
	return end > MinutesPerDay
}

// parseDayString parses a YYYY-MM-DD date string as a UTC calendar date.
func parseDayString(iso string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("shiftsat: invalid day string %q: %w", iso, err)
	}
	return t, nil
}

// formatDayString renders a UTC calendar date as YYYY-MM-DD.
func formatDayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// toDayOfWeekUTC maps a calendar date to one of seven lowercase day-of-week
// names ("sunday".."saturday").
func toDayOfWeekUTC(t time.Time) string {
	return daysOfWeek[int(t.UTC().Weekday())]
}

// rangesOverlap reports whether half-open intervals [a0,a1) and [b0,b1)
// overlap, using strict interior overlap (end-exclusive): max(a0,b0) < min(a1,b1).
func rangesOverlap(a0, a1, b0, b1 int) bool {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	return lo < hi
}

// dayOffsetMinutes returns the global-minute offset of a day index, used to
// place per-day, time-of-day intervals on a single contiguous minute axis
// spanning the whole scheduling horizon.
func dayOffsetMinutes(dayIndex int) int {
	return dayIndex * MinutesPerDay
}

// buildHorizon expands a [startISO, endISO] inclusive date range into a
// contiguous, calendar-ordered list of Day values with 0-based indices.
func buildHorizon(startISO, endISO string) ([]Day, error) {
	start, err := parseDayString(startISO)
	if err != nil {
		return nil, err
	}
	end, err := parseDayString(endISO)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("shiftsat: scheduling period end %s precedes start %s", endISO, startISO)
	}
	var days []Day
	idx := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{ISO: formatDayString(d), Index: idx})
		idx++
	}
	return days, nil
}
