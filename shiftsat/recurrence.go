package shiftsat

import (
	"time"

	"github.com/teambition/rrule-go"
)

// recurringPeriodMatches reports whether calendar date t falls within a
// RecurringPeriod's yearly (month, day-of-month) window. Periods where
// startMonth > endMonth (or equal months with startDay > endDay) wrap across
// the year boundary: the window is evaluated as two RRULE occurrence sets,
// one anchored in the year before t and one anchored in t's own year, and a
// match is reported if t falls in either anchored span (from the start
// occurrence through the end occurrence, inclusive). This
// documents and resolves the wraparound convention left open by the spec.
func recurringPeriodMatches(rp RecurringPeriod, t time.Time) bool {
	for _, anchorYear := range []int{t.Year() - 1, t.Year()} {
		start, end, ok := recurringPeriodSpan(rp, anchorYear)
		if !ok {
			continue
		}
		if !t.Before(start) && t.Before(end) {
			return true
		}
	}
	return false
}

// recurringPeriodSpan computes the concrete [start, end) UTC span of a
// RecurringPeriod anchored at anchorYear, expanding it via an RRULE so that
// month/day validity (leap years, short months) is handled by the library
// rather than hand-rolled arithmetic.
func recurringPeriodSpan(rp RecurringPeriod, anchorYear int) (time.Time, time.Time, bool) {
	wraps := rp.StartMonth > rp.EndMonth || (rp.StartMonth == rp.EndMonth && rp.StartDay > rp.EndDay)

	startYear := anchorYear
	endYear := anchorYear
	if wraps {
		endYear = anchorYear + 1
	}

	start, ok := occurrenceOn(startYear, rp.StartMonth, rp.StartDay)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	endDay, ok := occurrenceOn(endYear, rp.EndMonth, rp.EndDay)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	// End bound is exclusive and inclusive of the named end day, so add a day.
	return start, endDay.AddDate(0, 0, 1), true
}

// occurrenceOn resolves a single (year, month, day) RRULE occurrence,
// rejecting impossible calendar dates (e.g. Feb 30) rather than silently
// rolling them into the next month.
func occurrenceOn(year, month, day int) (time.Time, bool) {
	dtstart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Bymonth:    []int{month},
		Bymonthday: []int{day},
		Dtstart:    dtstart,
		Count:      1,
	})
	if err != nil {
		return time.Time{}, false
	}
	occurrences := r.All()
	if len(occurrences) == 0 || occurrences[0].Year() != year {
		return time.Time{}, false
	}
	return occurrences[0], true
}
