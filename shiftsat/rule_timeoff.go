package shiftsat

import "fmt"

func init() {
	RegisterRule("time-off", newTimeOffRule)
}

// timeOffRule blocks (or discourages) one member from working during a
// [Start,End) time-of-day window on a single day. End<=Start is treated as
// an overnight window exactly like a ShiftPattern's, wrapping past
// midnight — resolving the overnight time-off case the coverage window
// normalization already handles the same way.
type timeOffRule struct {
	name     string
	memberID string
	day      string
	start    int
	end      int
	hard     bool
	priority Priority
}

func newTimeOffRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	memberID, err := paramString(params, "memberId", true)
	if err != nil {
		return nil, err
	}
	day, err := paramString(params, "day", true)
	if err != nil {
		return nil, err
	}
	start, err := paramInt(params, "start", 0)
	if err != nil {
		return nil, err
	}
	end, err := paramInt(params, "end", 0)
	if err != nil {
		return nil, err
	}
	hard, err := paramBool(params, "hard", true)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriorityParam(params)
	if err != nil {
		return nil, err
	}
	return &timeOffRule{name: name, memberID: memberID, day: day, start: start, end: end, hard: hard, priority: priority}, nil
}

func (r *timeOffRule) Name() string { return r.name }

func (r *timeOffRule) Compile(b *Builder) error {
	d, ok := b.DayByISO(r.day)
	if !ok {
		return newRuleError(r.name, fmt.Errorf("day %q is outside the scheduling horizon", r.day))
	}
	end := normalizeEndMinutes(r.start, r.end)

	b.Reporter().ExcludeFromCoverage(r.memberID, r.day, [2]int{r.start, min(end, MinutesPerDay)})
	if isOvernight(end) {
		if nextDay, ok := b.DayByISO(followingDayISO(r.day)); ok {
			b.Reporter().ExcludeFromCoverage(r.memberID, nextDay.ISO, [2]int{0, end - MinutesPerDay})
		}
	}

	m, ok := b.memberByID[r.memberID]
	if !ok {
		return newRuleError(r.name, fmt.Errorf("unknown member id %q", r.memberID))
	}
	offStart := dayOffsetMinutes(d.Index) + r.start
	offEnd := dayOffsetMinutes(d.Index) + end

	for _, p := range b.Patterns() {
		for _, pd := range b.Days() {
			if !b.eligible(m, p, pd) {
				continue
			}
			pStart := dayOffsetMinutes(pd.Index) + p.Start
			pEnd := dayOffsetMinutes(pd.Index) + p.NormalizedEnd()
			if !rangesOverlap(offStart, offEnd, pStart, pEnd) {
				continue
			}
			assignVar := assignVarName(r.memberID, p.ID, pd.ISO)
			if r.hard {
				b.AddLinear([]Term{{Var: assignVar, Coeff: 1}}, ComparatorLE, 0)
				continue
			}
			b.AddPenalty(assignVar, priorityToPenalty(r.priority))
		}
	}
	return nil
}

func followingDayISO(iso string) string {
	t, err := parseDayString(iso)
	if err != nil {
		return ""
	}
	return formatDayString(t.AddDate(0, 0, 1))
}
