package shiftsat

// TimeVariant is one named alternative of a SemanticTime: a concrete
// {start,end} window that applies only on the days it names (via DayOfWeek
// or Dates), or unconditionally if neither is set.
type TimeVariant struct {
	Start, End int
	DayOfWeek  []string
	Dates      []string
}

func (v TimeVariant) appliesOn(day Day) bool {
	if len(v.Dates) > 0 {
		return containsString(v.Dates, day.ISO)
	}
	if len(v.DayOfWeek) > 0 {
		t, err := parseDayString(day.ISO)
		if err != nil {
			return false
		}
		return containsString(v.DayOfWeek, toDayOfWeekUTC(t))
	}
	return true // unconditional variant
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

// SemanticTime is a named, possibly variant-bearing time window. Default is
// the fallback window used when no Variants entry matches a given day.
type SemanticTime struct {
	Name     string
	Default  TimeVariant
	Variants []TimeVariant
}

// resolveSemanticTime selects exactly one variant of a SemanticTime for a
// given day, with precedence dates > dayOfWeek > default. Returns ok=false
// if no variant (including the default, which is unconditional unless it
// also names dates/dayOfWeek — it should not) matches.
func resolveSemanticTime(st SemanticTime, day Day) (TimeVariant, bool) {
	var byDates, byDayOfWeek, unconditional *TimeVariant
	for i := range st.Variants {
		v := &st.Variants[i]
		if !v.appliesOn(day) {
			continue
		}
		switch {
		case len(v.Dates) > 0:
			if byDates == nil {
				byDates = v
			}
		case len(v.DayOfWeek) > 0:
			if byDayOfWeek == nil {
				byDayOfWeek = v
			}
		default:
			if unconditional == nil {
				unconditional = v
			}
		}
	}
	switch {
	case byDates != nil:
		return *byDates, true
	case byDayOfWeek != nil:
		return *byDayOfWeek, true
	case unconditional != nil:
		return *unconditional, true
	case st.Default.appliesOn(day):
		return st.Default, true
	default:
		return TimeVariant{}, false
	}
}

// CountVariant is a per-day override of a CoverageRequirement's target
// count, selected with the same dates > dayOfWeek > default precedence as
// TimeVariant.
type CountVariant struct {
	Count     int
	DayOfWeek []string
	Dates     []string
}

func (v CountVariant) appliesOn(day Day) bool {
	tv := TimeVariant{DayOfWeek: v.DayOfWeek, Dates: v.Dates}
	return tv.appliesOn(day)
}

// resolveCountVariant mirrors resolveSemanticTime's precedence for a
// CoverageRequirement's per-day target-count variants.
func resolveCountVariant(defaultCount int, variants []CountVariant, day Day) int {
	var byDates, byDayOfWeek *CountVariant
	for i := range variants {
		v := &variants[i]
		if !v.appliesOn(day) {
			continue
		}
		if len(v.Dates) > 0 {
			if byDates == nil {
				byDates = v
			}
		} else if len(v.DayOfWeek) > 0 {
			if byDayOfWeek == nil {
				byDayOfWeek = v
			}
		}
	}
	switch {
	case byDates != nil:
		return byDates.Count
	case byDayOfWeek != nil:
		return byDayOfWeek.Count
	default:
		return defaultCount
	}
}

// ResolvedCoverage is a fully concrete coverage demand produced by expanding
// a CoverageRequirement (possibly naming a SemanticTime and count variants)
// across the horizon.
type ResolvedCoverage struct {
	Day              Day
	Start, End       int // time-of-day minutes, raw (pre-normalization)
	Count            int
	Priority         Priority
	Roles, Skills    []string
	Group            *ValidationGroup
}

// resolveCoverageRequirements expands coverage entries that name a semantic
// time (via semanticTimeName, looked up in registry) and/or per-day count
// variants into one ResolvedCoverage per (requirement, day) pair where a
// variant actually matches; requirements with no matching variant for a
// given day contribute nothing for that day.
func resolveCoverageRequirements(
	entries []CoverageSpec,
	registry map[string]SemanticTime,
	horizonDays []Day,
) []ResolvedCoverage {
	var out []ResolvedCoverage
	dayByISO := make(map[string]Day, len(horizonDays))
	for _, d := range horizonDays {
		dayByISO[d.ISO] = d
	}
	for _, spec := range entries {
		days := spec.days(horizonDays, dayByISO)
		for _, day := range days {
			start, end, ok := spec.resolveWindow(registry, day)
			if !ok {
				continue
			}
			count := resolveCountVariant(spec.Target, spec.CountVariants, day)
			out = append(out, ResolvedCoverage{
				Day: day, Start: start, End: end, Count: count,
				Priority: spec.Priority, Roles: spec.Roles, Skills: spec.Skills,
				Group: spec.Group,
			})
		}
	}
	return out
}

// CoverageSpec is the surface-level coverage declaration before semantic-time
// and per-day count resolution: it names either a concrete [Start,End)
// window or a SemanticTime by name, on either a single Day or every day in
// the horizon.
type CoverageSpec struct {
	Day           string // ISO date; empty means "every horizon day"
	Start, End    int    // used when SemanticTimeName == ""
	SemanticTimeName string
	Target        int
	CountVariants []CountVariant
	Priority      Priority
	Roles, Skills []string
	Group         *ValidationGroup
}

func (c CoverageSpec) days(horizonDays []Day, dayByISO map[string]Day) []Day {
	if c.Day == "" {
		return horizonDays
	}
	if d, ok := dayByISO[c.Day]; ok {
		return []Day{d}
	}
	return nil
}

func (c CoverageSpec) resolveWindow(registry map[string]SemanticTime, day Day) (int, int, bool) {
	if c.SemanticTimeName == "" {
		return c.Start, c.End, true
	}
	st, ok := registry[c.SemanticTimeName]
	if !ok {
		return 0, 0, false
	}
	v, ok := resolveSemanticTime(st, day)
	if !ok {
		return 0, 0, false
	}
	return v.Start, v.End, true
}
