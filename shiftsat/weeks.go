package shiftsat

// weekWindows groups a calendar-ordered day slice into contiguous windows
// that each start on weekStartsOn, except possibly the first (if the
// horizon itself doesn't begin on that weekday) and the last (if the
// horizon ends before a full week completes). Used by the week-scoped hour
// rules (§4.5) to bound sums over exactly the weeks the horizon covers.
func weekWindows(days []Day, weekStartsOn string) [][]Day {
	if len(days) == 0 {
		return nil
	}
	var windows [][]Day
	var current []Day
	for _, d := range days {
		t, err := parseDayString(d.ISO)
		if err == nil && toDayOfWeekUTC(t) == weekStartsOn && len(current) > 0 {
			windows = append(windows, current)
			current = nil
		}
		current = append(current, d)
	}
	if len(current) > 0 {
		windows = append(windows, current)
	}
	return windows
}
