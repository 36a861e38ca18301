package shiftsat

import "fmt"

// EntityScope selects a subset of Members for a rule. Exactly one variant
// may be set; the zero value selects the full universe (EntityScopeNone).
type EntityScope struct {
	Members []string // selects by id
	Roles   []string // selects members whose Roles intersect this set
	Skills  []string // selects members whose Skills superset this set
}

// variantCount returns how many of the mutually-exclusive variants are
// populated, used to enforce "at most one variant per rule".
func (s EntityScope) variantCount() int {
	n := 0
	if len(s.Members) > 0 {
		n++
	}
	if len(s.Roles) > 0 {
		n++
	}
	if len(s.Skills) > 0 {
		n++
	}
	return n
}

func (s EntityScope) validate() error {
	if s.variantCount() > 1 {
		return fmt.Errorf("shiftsat: EntityScope must set at most one of members/roles/skills")
	}
	return nil
}

// resolveMembers expands an EntityScope against the full member universe.
// members selects by id; roles selects by role-set intersection; skills
// selects by skill-set superset; the zero-value scope returns the universe.
// The result is sorted by member id for deterministic downstream iteration.
func resolveMembers(scope EntityScope, universe []Member) ([]Member, error) {
	if err := scope.validate(); err != nil {
		return nil, err
	}
	var out []Member
	switch {
	case len(scope.Members) > 0:
		want := sortedCopy(scope.Members)
		byID := make(map[string]Member, len(universe))
		for _, m := range universe {
			byID[m.ID] = m
		}
		for _, id := range want {
			if m, ok := byID[id]; ok {
				out = append(out, m)
			}
		}
	case len(scope.Roles) > 0:
		for _, m := range universe {
			if intersects(m.Roles, scope.Roles) {
				out = append(out, m)
			}
		}
	case len(scope.Skills) > 0:
		for _, m := range universe {
			if supersetOf(m.Skills, scope.Skills) {
				out = append(out, m)
			}
		}
	default:
		out = append(out, universe...)
	}
	orderMembersByID(out)
	return out, nil
}

func orderMembersByID(ms []Member) {
	// insertion sort is fine: member lists are small; keeps this dependency-free.
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].ID < ms[j-1].ID; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

// RecurringPeriod names a yearly recurring window by month/day-of-month
// bounds, possibly wrapping the year boundary (startMonth > endMonth, or
// equal months with startDay > endDay).
type RecurringPeriod struct {
	Name                         string
	StartMonth, StartDay         int
	EndMonth, EndDay             int
}

// TimeScope selects a subset of horizon Days for a rule. Exactly one variant
// may be set; the zero value selects every day (TimeScopeNone).
type TimeScope struct {
	DateRangeStart, DateRangeEnd string // inclusive ISO bounds
	SpecificDates                []string
	DayOfWeek                    []string
	RecurringPeriods             []RecurringPeriod
}

func (s TimeScope) variantCount() int {
	n := 0
	if s.DateRangeStart != "" || s.DateRangeEnd != "" {
		n++
	}
	if len(s.SpecificDates) > 0 {
		n++
	}
	if len(s.DayOfWeek) > 0 {
		n++
	}
	if len(s.RecurringPeriods) > 0 {
		n++
	}
	return n
}

func (s TimeScope) validate() error {
	if s.variantCount() > 1 {
		return fmt.Errorf("shiftsat: TimeScope must set at most one of dateRange/specificDates/dayOfWeek/recurringPeriods")
	}
	return nil
}

// resolveActiveDays filters horizonDays by a TimeScope, returning the subset
// in horizon (calendar) order.
func resolveActiveDays(scope TimeScope, horizonDays []Day) ([]Day, error) {
	if err := scope.validate(); err != nil {
		return nil, err
	}
	switch {
	case scope.DateRangeStart != "" || scope.DateRangeEnd != "":
		return filterDays(horizonDays, func(d Day) bool {
			return d.ISO >= scope.DateRangeStart && d.ISO <= scope.DateRangeEnd
		}), nil
	case len(scope.SpecificDates) > 0:
		want := sortedCopy(scope.SpecificDates)
		set := make(map[string]struct{}, len(want))
		for _, d := range want {
			set[d] = struct{}{}
		}
		return filterDays(horizonDays, func(d Day) bool {
			_, ok := set[d.ISO]
			return ok
		}), nil
	case len(scope.DayOfWeek) > 0:
		want := make(map[string]struct{}, len(scope.DayOfWeek))
		for _, dow := range scope.DayOfWeek {
			want[dow] = struct{}{}
		}
		return filterDays(horizonDays, func(d Day) bool {
			t, err := parseDayString(d.ISO)
			if err != nil {
				return false
			}
			_, ok := want[toDayOfWeekUTC(t)]
			return ok
		}), nil
	case len(scope.RecurringPeriods) > 0:
		return filterDays(horizonDays, func(d Day) bool {
			t, err := parseDayString(d.ISO)
			if err != nil {
				return false
			}
			for _, rp := range scope.RecurringPeriods {
				if recurringPeriodMatches(rp, t) {
					return true
				}
			}
			return false
		}), nil
	default:
		return horizonDays, nil
	}
}

func filterDays(days []Day, keep func(Day) bool) []Day {
	var out []Day
	for _, d := range days {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
