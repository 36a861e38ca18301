package shiftsat

// Day is an ISO calendar date within the scheduling horizon, assigned a
// 0-based contiguous index. dayOffsetMinutes(Index) locates it on the
// horizon-wide global-minute axis.
type Day struct {
	ISO   string
	Index int
}

// PayKind distinguishes how a Member's cost is computed by the cost rule
// family (see rule_cost.go).
type PayKind int

const (
	// PayHourly members cost duration(pattern) * Rate per assignment.
	PayHourly PayKind = iota
	// PaySalaried members cost Rate once per scheduling week in which they
	// hold any assignment at all, regardless of how many hours that week.
	PaySalaried
)

// PayDescriptor is an optional per-Member cost basis, consumed only by the
// minimize-cost rule family.
type PayDescriptor struct {
	Kind PayKind
	Rate float64 // hourly rate, or weekly salary, depending on Kind
}

// Member is a schedulable person. ID must not contain ':' (the wire-format
// field separator). Roles and Skills are declared vocabularies referenced by
// CoverageRequirement qualifiers and by rule EntityScopes.
type Member struct {
	ID     string
	Roles  []string
	Skills []string
	Pay    *PayDescriptor
}

// ShiftPattern is a reusable named shift template. End <= Start encodes an
// overnight shift; use normalizeEndMinutes to obtain the wraparound-adjusted
// end value. Roles and DaysOfWeek, when non-empty, restrict which members and
// which calendar days the pattern is available on.
type ShiftPattern struct {
	ID         string
	Start, End int // minutes-of-day, raw (not yet normalized)
	Roles      []string
	DaysOfWeek []string
	Location   string
}

// NormalizedEnd returns the pattern's end time normalized into the same
// coordinate space as Start (so overnight patterns read as > MinutesPerDay).
func (p ShiftPattern) NormalizedEnd() int {
	return normalizeEndMinutes(p.Start, p.End)
}

// DurationMinutes returns the pattern's wall-clock length.
func (p ShiftPattern) DurationMinutes() int {
	return p.NormalizedEnd() - p.Start
}

// Priority classifies how strictly a CoverageRequirement or soft rule must be
// satisfied. MANDATORY compiles to a hard linear constraint; all other
// priorities compile to a soft-linear constraint with the penalty weights in
// priorityToPenalty.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityMandatory
)

// ValidationGroup tags an error/violation/passed item for summary
// aggregation. Keys are opaque to the core; Title is UI-facing.
type ValidationGroup struct {
	Key   string
	Title string
}

// CoverageRequirement is a per-day staffing demand. Exactly one of
// (Roles non-empty) or (Skills non-empty, Roles empty) must be satisfied by
// config validation — ResolvedCoverage (semantictime.go) is the resolved form
// used internally once semantic-time and per-day count variants are expanded.
type CoverageRequirement struct {
	Day      string // ISO date
	Start    int    // time-of-day minutes, half-open interval start
	End      int    // time-of-day minutes, half-open interval end (raw, pre-normalization)
	Target   int
	Priority Priority
	Roles    []string // OR-matched
	Skills   []string // AND-matched
	Group    *ValidationGroup
}

// HasRoles reports whether the requirement carries a role qualifier.
func (c CoverageRequirement) HasRoles() bool { return len(c.Roles) > 0 }

// HasSkills reports whether the requirement carries a skill qualifier.
func (c CoverageRequirement) HasSkills() bool { return len(c.Skills) > 0 }

// qualifierKey renders a stable, sorted string identifying this
// requirement's role/skill qualifier, used in variable/constraint ids.
func (c CoverageRequirement) qualifierKey() string {
	return qualifierKeyFor(c.Roles, c.Skills)
}

func qualifierKeyFor(roles, skills []string) string {
	r := sortedCopy(roles)
	s := sortedCopy(skills)
	return joinOrPlaceholder(r) + "/" + joinOrPlaceholder(s)
}
