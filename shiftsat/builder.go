package shiftsat

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultBucketMinutes is the coverage discretization bucket width used when
// Config.BucketMinutes is zero.
const DefaultBucketMinutes = 15

var allowedBucketSizes = map[int]bool{5: true, 10: true, 15: true, 30: true, 60: true}

// CostContext is the small optional record a minimize-cost rule sets on the
// Builder before any cost-modifier rule compiles. Modifier rules read it but
// never mutate it — costContext is owned by the Builder and only
// minimize-cost itself may assign NormalizationFactor/Active.
type CostContext struct {
	NormalizationFactor int
	Active              bool
}

// Config is the complete input to NewBuilder.
type Config struct {
	Members       []Member
	Patterns      []ShiftPattern
	PeriodStart   string // ISO, inclusive
	PeriodEnd     string // ISO, inclusive
	Coverage      []CoverageSpec
	SemanticTimes map[string]SemanticTime
	Rules         []Rule

	BucketMinutes    int  // one of {5,10,15,30,60}; default 15
	FairDistribution *bool // default true
	WeekStartsOn     string // default "monday"

	// CanAssign overrides the default role-compatibility eligibility check.
	// Left nil, a member can be assigned a pattern iff the pattern declares
	// no Roles restriction or the member holds at least one of them.
	CanAssign func(Member, ShiftPattern) bool

	Logger *logrus.Entry
}

// Builder owns the variable/constraint/objective/reporter state for one
// compilation. It is created, mutated during rule compilation, and frozen at
// Compile(). Variables and constraints are append-only.
type Builder struct {
	log *logrus.Entry

	members     []Member
	patterns    []ShiftPattern
	days        []Day
	memberByID  map[string]Member
	patternByID map[string]ShiftPattern
	dayIndex    map[string]int

	rules            []Rule
	coverageSpecs    []CoverageSpec
	semanticTimes    map[string]SemanticTime
	bucketMinutes    int
	fairDistribution bool
	weekStartsOn     string
	canAssignFn      func(Member, ShiftPattern) bool

	vars           *variableStore
	constraints    []Constraint
	objectiveTerms []Term
	reporter       *Reporter
	costContext    *CostContext

	requestID string

	compiled        bool
	compiledRequest *SolverRequest
	compileErr      error
}

// NewBuilder validates cfg and constructs a Builder over the resolved
// horizon. It does not compile — call Compile to run the rule pass and emit
// a SolverRequest.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := validateIDs(cfg); err != nil {
		return nil, err
	}
	if err := validateCoverageQualifiers(cfg); err != nil {
		return nil, err
	}

	bucket := cfg.BucketMinutes
	if bucket == 0 {
		bucket = DefaultBucketMinutes
	}
	if !allowedBucketSizes[bucket] {
		return nil, newConfigError("bucketMinutes", "must be one of 5, 10, 15, 30, 60 (got %d)", bucket)
	}

	fair := true
	if cfg.FairDistribution != nil {
		fair = *cfg.FairDistribution
	}

	weekStartsOn := cfg.WeekStartsOn
	if weekStartsOn == "" {
		weekStartsOn = "monday"
	}

	days, err := buildHorizon(cfg.PeriodStart, cfg.PeriodEnd)
	if err != nil {
		return nil, err
	}

	dayIndex := make(map[string]int, len(days))
	for _, d := range days {
		dayIndex[d.ISO] = d.Index
	}
	memberByID := make(map[string]Member, len(cfg.Members))
	for _, m := range cfg.Members {
		memberByID[m.ID] = m
	}
	patternByID := make(map[string]ShiftPattern, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		patternByID[p.ID] = p
	}

	canAssign := cfg.CanAssign
	if canAssign == nil {
		canAssign = defaultCanAssign
	}

	log := componentLogger(cfg.Logger, "builder")

	return &Builder{
		log:              log,
		members:          append([]Member(nil), cfg.Members...),
		patterns:         append([]ShiftPattern(nil), cfg.Patterns...),
		days:             days,
		memberByID:       memberByID,
		patternByID:      patternByID,
		dayIndex:         dayIndex,
		rules:            orderRules(cfg.Rules),
		coverageSpecs:    cfg.Coverage,
		semanticTimes:    cfg.SemanticTimes,
		bucketMinutes:    bucket,
		fairDistribution: fair,
		weekStartsOn:     weekStartsOn,
		canAssignFn:      canAssign,
		vars:             newVariableStore(),
		reporter:         NewReporter(cfg.Logger),
		requestID:        uuid.NewString(),
	}, nil
}

func defaultCanAssign(m Member, p ShiftPattern) bool {
	if len(p.Roles) == 0 {
		return true
	}
	return intersects(m.Roles, p.Roles)
}

// orderRules hoists minimize-cost to the front, preserving the relative
// order of every other rule (§4.6 step 1, §8 property 8).
func orderRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	var costRule Rule
	for _, r := range rules {
		_, isCost := r.(*minimizeCostRule)
		if (isCost || r.Name() == "minimize-cost") && costRule == nil {
			costRule = r
			continue
		}
		out = append(out, r)
	}
	if costRule != nil {
		out = append([]Rule{costRule}, out...)
	}
	return out
}

func validateIDs(cfg Config) error {
	seen := make(map[string]bool)
	for _, m := range cfg.Members {
		if strings.Contains(m.ID, ":") {
			return newConfigError("member.id", "id %q must not contain ':'", m.ID)
		}
		if seen[m.ID] {
			return newConfigError("member.id", "duplicate member id %q", m.ID)
		}
		seen[m.ID] = true
	}
	seen = make(map[string]bool)
	for _, p := range cfg.Patterns {
		if strings.Contains(p.ID, ":") {
			return newConfigError("pattern.id", "id %q must not contain ':'", p.ID)
		}
		if seen[p.ID] {
			return newConfigError("pattern.id", "duplicate pattern id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func validateCoverageQualifiers(cfg Config) error {
	roles := make(map[string]bool)
	skills := make(map[string]bool)
	for _, m := range cfg.Members {
		for _, r := range m.Roles {
			roles[r] = true
		}
		for _, s := range m.Skills {
			skills[s] = true
		}
	}
	for _, p := range cfg.Patterns {
		for _, r := range p.Roles {
			roles[r] = true
		}
	}
	for _, c := range cfg.Coverage {
		if len(c.Roles) == 0 && len(c.Skills) == 0 {
			return newConfigError("coverage", "coverage requirement must declare roles or skills")
		}
		for _, r := range c.Roles {
			if !roles[r] {
				return newConfigError("coverage.roles", "unknown role %q", r)
			}
		}
		for _, s := range c.Skills {
			if !skills[s] {
				return newConfigError("coverage.skills", "unknown skill %q", s)
			}
		}
	}
	return nil
}

// Members returns the full member universe, sorted by id.
func (b *Builder) Members() []Member {
	out := append([]Member(nil), b.members...)
	orderMembersByID(out)
	return out
}

// Patterns returns the full shift-pattern universe, sorted by id.
func (b *Builder) Patterns() []ShiftPattern {
	out := append([]ShiftPattern(nil), b.patterns...)
	orderPatternsByID(out)
	return out
}

func orderPatternsByID(ps []ShiftPattern) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && ps[j].ID < ps[j-1].ID; j-- {
			ps[j], ps[j-1] = ps[j-1], ps[j]
		}
	}
}

// Days returns the resolved horizon, in calendar order.
func (b *Builder) Days() []Day { return append([]Day(nil), b.days...) }

// WeekStartsOn returns the configured first weekday of a scheduling week,
// used by week-scoped rules to bound their windows.
func (b *Builder) WeekStartsOn() string { return b.weekStartsOn }

// ResolveMembers resolves an EntityScope against the full member universe,
// the shared entry point rule files use instead of reimplementing scope
// resolution.
func (b *Builder) ResolveMembers(scope EntityScope) ([]Member, error) {
	return resolveMembers(scope, b.Members())
}

// ResolveActiveDays resolves a TimeScope against the compiled horizon.
func (b *Builder) ResolveActiveDays(scope TimeScope) ([]Day, error) {
	return resolveActiveDays(scope, b.days)
}

// DayByISO looks up a horizon day by its ISO date.
func (b *Builder) DayByISO(iso string) (Day, bool) {
	idx, ok := b.dayIndex[iso]
	if !ok {
		return Day{}, false
	}
	return Day{ISO: iso, Index: idx}, true
}

// CanAssign reports whether member may ever work pattern, independent of day.
func (b *Builder) CanAssign(m Member, p ShiftPattern) bool { return b.canAssignFn(m, p) }

// PatternAvailableOnDay reports whether pattern runs on the given calendar
// day, per its optional DaysOfWeek allow-list.
func (b *Builder) PatternAvailableOnDay(p ShiftPattern, day Day) bool {
	if len(p.DaysOfWeek) == 0 {
		return true
	}
	t, err := parseDayString(day.ISO)
	if err != nil {
		return false
	}
	return containsString(p.DaysOfWeek, toDayOfWeekUTC(t))
}

// PatternDuration returns a pattern's wall-clock length in minutes.
func (b *Builder) PatternDuration(p ShiftPattern) int { return p.DurationMinutes() }

// Reporter returns the Builder's Validation Reporter.
func (b *Builder) Reporter() *Reporter { return b.reporter }

// CostContext returns the Builder's cost context, or nil if minimize-cost has
// not (yet) compiled.
func (b *Builder) CostContext() *CostContext { return b.costContext }

// SetCostContext is called exactly once, by the minimize-cost rule, to
// activate cost-modifier compilation. Any later caller's write is ignored
// with a logged warning, preserving "modifier rules read it, never mutate it
// after minimize-cost has set it".
func (b *Builder) SetCostContext(cc CostContext) {
	if b.costContext != nil {
		b.log.Warn("CostContext already set; ignoring redundant SetCostContext call")
		return
	}
	b.costContext = &cc
}

// eligible reports whether an interval/assignment variable should exist for
// (member, pattern, day): canAssign(member,pattern) AND
// patternAvailableOnDay(pattern,day), the invariant governing interval
// emission.
func (b *Builder) eligible(m Member, p ShiftPattern, day Day) bool {
	return b.CanAssign(m, p) && b.PatternAvailableOnDay(p, day)
}

// AssignmentVar interns (if not already present) and returns the boolean
// assignment variable name for (member, pattern, day). It is an error to
// call this for an ineligible triple.
func (b *Builder) AssignmentVar(memberID, patternID, day string) (string, error) {
	name := assignVarName(memberID, patternID, day)
	return b.vars.internBool(name)
}

// ShiftActiveVar interns (if not already present) and returns the boolean
// "is this pattern run at all on this day" variable name.
func (b *Builder) ShiftActiveVar(patternID, day string) (string, error) {
	name := shiftVarName(patternID, day)
	return b.vars.internBool(name)
}

// IntervalVar interns an optional interval variable with the given presence
// boolean (empty presenceVar means always-present).
func (b *Builder) IntervalVar(name string, start, end int, presenceVar string) (string, error) {
	return b.vars.internInterval(name, start, end, presenceVar)
}

// NewIntVar interns an integer decision variable with bounds [lo, hi].
func (b *Builder) NewIntVar(name string, lo, hi int) (string, error) {
	return b.vars.internInt(name, lo, hi)
}

// NewBoolVar interns a boolean decision variable.
func (b *Builder) NewBoolVar(name string) (string, error) {
	return b.vars.internBool(name)
}

// AddLinear emits a hard linear constraint sum(terms) op rhs.
func (b *Builder) AddLinear(terms []Term, op Comparator, rhs int) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintLinear, Terms: terms, Op: op, RHS: rhs})
}

// AddSoftLinear emits a soft linear constraint with an associated penalty
// weight and tracked id.
func (b *Builder) AddSoftLinear(terms []Term, op Comparator, rhs, penalty int, id string) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintSoftLinear, Terms: terms, Op: op, RHS: rhs, Penalty: penalty, ID: id})
}

// AddExactlyOne emits an exactly-one constraint over vars.
func (b *Builder) AddExactlyOne(vars []string) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintExactlyOne, Vars: vars})
}

// AddAtMostOne emits an at-most-one constraint over vars.
func (b *Builder) AddAtMostOne(vars []string) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintAtMostOne, Vars: vars})
}

// AddImplication emits if -> then.
func (b *Builder) AddImplication(ifVar, thenVar string) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintImplication, If: ifVar, Then: thenVar})
}

// AddBoolOr emits a disjunction over vars.
func (b *Builder) AddBoolOr(vars []string) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintBoolOr, Vars: vars})
}

// AddBoolAnd emits a conjunction over vars.
func (b *Builder) AddBoolAnd(vars []string) {
	b.constraints = append(b.constraints, Constraint{Type: ConstraintBoolAnd, Vars: vars})
}

// AddNoOverlap emits a no-overlap constraint over a set of interval
// variables (by name).
func (b *Builder) AddNoOverlap(intervals []string) {
	if len(intervals) < 2 {
		return
	}
	b.constraints = append(b.constraints, Constraint{Type: ConstraintNoOverlap, Intervals: intervals})
}

// AddPenalty adds a coefficient*variable term to the default minimization
// objective.
func (b *Builder) AddPenalty(varName string, coeff int) {
	if coeff == 0 {
		return
	}
	b.objectiveTerms = append(b.objectiveTerms, Term{Var: varName, Coeff: coeff})
}

// Compile runs the full compilation algorithm exactly once; subsequent calls
// return the cached SolverRequest (compilation is idempotent).
func (b *Builder) Compile() (*SolverRequest, error) {
	if b.compiled {
		return b.compiledRequest, b.compileErr
	}
	b.compiled = true
	req, err := b.compileOnce()
	b.compiledRequest, b.compileErr = req, err
	return req, err
}

func (b *Builder) compileOnce() (*SolverRequest, error) {
	b.log.Debug("compilation starting")

	for _, rule := range b.rules {
		b.log.WithField("rule", rule.Name()).Debug("compiling rule")
		if err := rule.Compile(b); err != nil {
			b.reporter.ReportRuleError(rule.Name(), nil, nil, err.Error())
			return nil, newRuleError(rule.Name(), err)
		}
	}

	if err := b.emitAssignmentImplications(); err != nil {
		return nil, err
	}
	if err := b.emitIntervalsAndNoOverlap(); err != nil {
		return nil, err
	}
	b.compileCoverage()
	b.emitDefaultObjective()

	req := &SolverRequest{
		Variables:   b.vars.all(),
		Constraints: append([]Constraint(nil), b.constraints...),
		Options:     &SolverOptions{RequestID: b.requestID},
	}
	if len(b.objectiveTerms) > 0 {
		req.Objective = &Objective{Sense: "minimize", Terms: append([]Term(nil), b.objectiveTerms...)}
	}

	b.log.WithField("canSolve", !b.reporter.HasErrors()).Debug("compilation finished")
	return req, nil
}

// CanSolve reports whether the reporter has recorded no error during
// compilation. Valid only after Compile has returned.
func (b *Builder) CanSolve() bool { return !b.reporter.HasErrors() }

// emitAssignmentImplications emits assign(m,p,d) -> shiftActive(p,d) for
// every eligible triple (§4.6 step 2).
func (b *Builder) emitAssignmentImplications() error {
	for _, m := range b.Members() {
		for _, p := range b.Patterns() {
			for _, d := range b.days {
				if !b.eligible(m, p, d) {
					continue
				}
				assignVar, err := b.AssignmentVar(m.ID, p.ID, d.ISO)
				if err != nil {
					return err
				}
				shiftVar, err := b.ShiftActiveVar(p.ID, d.ISO)
				if err != nil {
					return err
				}
				b.AddImplication(assignVar, shiftVar)
			}
		}
	}
	return nil
}

// emitIntervalsAndNoOverlap builds one optional interval per eligible
// (member, pattern, day) triple on the horizon-wide global-minute axis, and
// asserts no-overlap across all of a member's intervals (§4.6 step 3).
func (b *Builder) emitIntervalsAndNoOverlap() error {
	for _, m := range b.Members() {
		var intervals []string
		for _, p := range b.Patterns() {
			for _, d := range b.days {
				if !b.eligible(m, p, d) {
					continue
				}
				assignVar, err := b.AssignmentVar(m.ID, p.ID, d.ISO)
				if err != nil {
					return err
				}
				offset := dayOffsetMinutes(d.Index)
				start := offset + p.Start
				end := offset + p.NormalizedEnd()
				name := intervalVarName(m.ID, p.ID, d.ISO)
				if _, err := b.IntervalVar(name, start, end, assignVar); err != nil {
					return err
				}
				intervals = append(intervals, name)
			}
		}
		b.AddNoOverlap(intervals)
	}
	return nil
}

// emitDefaultObjective adds shift-minimization, fair-distribution, and
// base-tiebreaker penalty terms (§4.6 step 5).
func (b *Builder) emitDefaultObjective() {
	b.emitShiftMinimization()
	if b.fairDistribution && len(b.members) > 1 {
		b.emitFairDistribution()
	}
	b.emitBaseTiebreaker()
}

func (b *Builder) emitShiftMinimization() {
	for _, p := range b.Patterns() {
		for _, d := range b.days {
			name := shiftVarName(p.ID, d.ISO)
			if !b.vars.has(name) {
				continue
			}
			b.AddPenalty(name, PenaltyShiftActive)
		}
	}
}

func (b *Builder) emitFairDistribution() {
	maxPossible := len(b.days) * len(b.patterns)
	maxVar, err := b.NewIntVar(fairnessMaxAssignmentsVar, 0, maxPossible)
	if err != nil {
		b.log.WithError(err).Error("failed to intern fairness variable")
		return
	}
	any := false
	for _, m := range b.Members() {
		var terms []Term
		for _, p := range b.Patterns() {
			for _, d := range b.days {
				if !b.eligible(m, p, d) {
					continue
				}
				terms = append(terms, Term{Var: assignVarName(m.ID, p.ID, d.ISO), Coeff: 1})
			}
		}
		if len(terms) == 0 {
			continue
		}
		any = true
		terms = append(terms, Term{Var: maxVar, Coeff: -1})
		b.AddLinear(terms, ComparatorLE, 0)
	}
	if any {
		b.AddPenalty(maxVar, PenaltyFairness)
	}
}

func (b *Builder) emitBaseTiebreaker() {
	for _, m := range b.Members() {
		for _, p := range b.Patterns() {
			for _, d := range b.days {
				if !b.eligible(m, p, d) {
					continue
				}
				b.AddPenalty(assignVarName(m.ID, p.ID, d.ISO), PenaltyAssignmentBase)
			}
		}
	}
}
