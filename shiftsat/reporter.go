package shiftsat

import (
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ungroupedKey is the sentinel ValidationGroup key used by summarizeValidation
// for items that carry no explicit group.
const ungroupedKey = "_ungrouped_"

// Comparator is the relational operator of a linear constraint.
type Comparator string

const (
	ComparatorLE Comparator = "<="
	ComparatorGE Comparator = ">="
	ComparatorEQ Comparator = "=="
)

// TrackedConstraint is the metadata the Reporter retains for a soft
// constraint so that a post-solve SolverResponse's softViolations can be
// joined back to the rule/coverage entry that produced it.
type TrackedConstraint struct {
	ID          string
	Description string
	Target      int
	Comparator  Comparator
	Day         string
	TimeSlot    string
	Qualifier   string
	Context     string
	Group       *ValidationGroup
}

// ErrorItem is a pre-solve infeasibility or a solver-reported error.
type ErrorItem struct {
	ID          string
	Reason      string
	Day         string
	TimeSlots   []string
	Roles       []string
	Skills      []string
	Suggestions []string
	Group       *ValidationGroup
}

// ViolationItem is a soft constraint the returned solution failed to satisfy.
type ViolationItem struct {
	ID              string
	ConstraintID    string
	Description     string
	TargetValue     int
	ActualValue     int
	ViolationAmount int
	Day             string
	Group           *ValidationGroup
}

// PassedItem is a soft constraint the returned solution satisfied.
type PassedItem struct {
	ID           string
	ConstraintID string
	Description  string
	Day          string
	Group        *ValidationGroup
}

// ExclusionItem is a (member, day, time-of-day window) triple during which a
// rule forbids the member from counting toward coverage. A zero Window
// excludes the member for the entire day.
type ExclusionItem struct {
	Member string
	Day    string
	Window [2]int // time-of-day minutes, half-open; zero value means whole day
}

func (e ExclusionItem) overlaps(bucketStart, bucketEnd int) bool {
	if e.Window == [2]int{} {
		return true
	}
	return rangesOverlap(e.Window[0], e.Window[1], bucketStart, bucketEnd)
}

// GroupStatus summarizes one ValidationGroup's outcome.
type GroupStatus struct {
	Key      string
	Title    string
	Passed   int
	Violated int
	Errored  int
	Status   string // "passed" | "partial" | "failed"
}

// ValidationSummary is the result of grouping a Reporter's accumulated items.
type ValidationSummary struct {
	Groups []GroupStatus
}

// Reporter accumulates errors, violations, passed items, and exclusions
// across a Builder's compile and post-solve analysis. It begins empty and is
// owned exclusively by the Builder for the compile lifetime; rules receive
// only a borrowed handle and never mutate it after compilation completes
// except through the documented report/track/exclude calls.
type Reporter struct {
	log               *logrus.Entry
	errors            []ErrorItem
	violations        []ViolationItem
	passed            []PassedItem
	exclusions        []ExclusionItem
	tracked           map[string]TrackedConstraint
	trackedOrder      []string
	solverErrorSeq    int
}

// NewReporter constructs an empty Reporter. log may be nil.
func NewReporter(log *logrus.Entry) *Reporter {
	return &Reporter{
		log:     componentLogger(log, "reporter"),
		tracked: make(map[string]TrackedConstraint),
	}
}

// ReportCoverageError records a pre-solve coverage infeasibility.
func (r *Reporter) ReportCoverageError(day string, timeSlots, roles, skills []string, reason string, group *ValidationGroup, suggestions ...string) {
	item := ErrorItem{
		ID:          coverageItemID(CategoryError, day, timeSlots, roles, skills),
		Reason:      reason,
		Day:         day,
		TimeSlots:   sortedCopy(timeSlots),
		Roles:       sortedCopy(roles),
		Skills:      sortedCopy(skills),
		Suggestions: suggestions,
		Group:       group,
	}
	r.errors = append(r.errors, item)
	r.log.WithField("day", day).WithField("reason", reason).Warn("coverage error recorded")
}

// ReportRuleError records a rule-specific pre-solve impossibility.
func (r *Reporter) ReportRuleError(ruleName string, dates, members []string, reason string) {
	item := ErrorItem{
		ID:     ruleItemID(CategoryError, ruleName, dates, members),
		Reason: reason,
	}
	r.errors = append(r.errors, item)
	r.log.WithField("rule", ruleName).Error(reason)
}

// ReportSolverError records a solver-level error (INFEASIBLE/TIMEOUT/ERROR).
// Solver errors use sequential ids rather than content-derived ones, since
// they describe a single run's outcome rather than a reproducible logical
// condition.
func (r *Reporter) ReportSolverError(reason string) {
	r.solverErrorSeq++
	item := ErrorItem{
		ID:     "error:solver:" + strconv.Itoa(r.solverErrorSeq),
		Reason: reason,
	}
	r.errors = append(r.errors, item)
	r.log.WithField("reason", reason).Error("solver error recorded")
}

// TrackConstraint records a soft constraint's metadata for later joining
// against a SolverResponse's softViolations.
func (r *Reporter) TrackConstraint(tc TrackedConstraint) {
	if _, exists := r.tracked[tc.ID]; !exists {
		r.trackedOrder = append(r.trackedOrder, tc.ID)
	}
	r.tracked[tc.ID] = tc
}

// ExcludeFromCoverage records a (member, day, window) exclusion.
func (r *Reporter) ExcludeFromCoverage(member, day string, window [2]int) {
	r.exclusions = append(r.exclusions, ExclusionItem{Member: member, Day: day, Window: window})
}

// Excludes reports whether member is excluded from counting toward coverage
// during [bucketStart, bucketEnd) on day.
func (r *Reporter) Excludes(member, day string, bucketStart, bucketEnd int) bool {
	for _, e := range r.exclusions {
		if e.Member == member && e.Day == day && e.overlaps(bucketStart, bucketEnd) {
			return true
		}
	}
	return false
}

// HasErrors reports whether any error has been recorded, the condition under
// which Builder.CanSolve reports false.
func (r *Reporter) HasErrors() bool { return len(r.errors) > 0 }

// Errors, Violations, Passed return defensive copies in recorded order.
func (r *Reporter) Errors() []ErrorItem         { return append([]ErrorItem(nil), r.errors...) }
func (r *Reporter) Violations() []ViolationItem { return append([]ViolationItem(nil), r.violations...) }
func (r *Reporter) Passed() []PassedItem        { return append([]PassedItem(nil), r.passed...) }
func (r *Reporter) Exclusions() []ExclusionItem { return append([]ExclusionItem(nil), r.exclusions...) }

// AnalyzeSolution joins a SolverResponse's softViolations against tracked
// constraints: every hit produces a ViolationItem, and every tracked
// constraint with no hit produces a PassedItem.
func (r *Reporter) AnalyzeSolution(resp SolverResponse) {
	hit := make(map[string]SoftViolation, len(resp.SoftViolations))
	for _, v := range resp.SoftViolations {
		hit[v.ConstraintID] = v
	}
	for _, id := range r.trackedOrder {
		tc := r.tracked[id]
		if v, ok := hit[id]; ok {
			r.violations = append(r.violations, ViolationItem{
				ID:              ruleOrCoverageViolationID(tc),
				ConstraintID:    tc.ID,
				Description:     tc.Description,
				TargetValue:     v.TargetValue,
				ActualValue:     v.ActualValue,
				ViolationAmount: v.ViolationAmount,
				Day:             tc.Day,
				Group:           tc.Group,
			})
		} else {
			r.passed = append(r.passed, PassedItem{
				ID:           ruleOrCoveragePassedID(tc),
				ConstraintID: tc.ID,
				Description:  tc.Description,
				Day:          tc.Day,
				Group:        tc.Group,
			})
		}
	}
}

func ruleOrCoverageViolationID(tc TrackedConstraint) string {
	if tc.Qualifier != "" || tc.TimeSlot != "" {
		return coverageItemID(CategoryViolation, tc.Day, splitNonEmpty(tc.TimeSlot), splitNonEmpty(tc.Context), splitNonEmpty(tc.Qualifier))
	}
	return ruleItemID(CategoryViolation, tc.Context, splitNonEmpty(tc.Day), nil)
}

func ruleOrCoveragePassedID(tc TrackedConstraint) string {
	if tc.Qualifier != "" || tc.TimeSlot != "" {
		return coverageItemID(CategoryPassed, tc.Day, splitNonEmpty(tc.TimeSlot), splitNonEmpty(tc.Context), splitNonEmpty(tc.Qualifier))
	}
	return ruleItemID(CategoryPassed, tc.Context, splitNonEmpty(tc.Day), nil)
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// SummarizeValidation groups accumulated items by ValidationGroup.Key (using
// the ungrouped sentinel for items with no group), computing per-group
// passed/violated/errored counts and a status: "failed" if the group has any
// error, else "partial" if it has any violation, else "passed".
func (r *Reporter) SummarizeValidation() ValidationSummary {
	type counts struct {
		title              string
		passed, violated, errored int
	}
	byKey := make(map[string]*counts)
	order := []string{}
	ensure := func(g *ValidationGroup) *counts {
		key, title := ungroupedKey, "Ungrouped"
		if g != nil {
			key, title = g.Key, g.Title
		}
		c, ok := byKey[key]
		if !ok {
			c = &counts{title: title}
			byKey[key] = c
			order = append(order, key)
		}
		return c
	}
	for _, e := range r.errors {
		ensure(e.Group).errored++
	}
	for _, v := range r.violations {
		ensure(v.Group).violated++
	}
	for _, p := range r.passed {
		ensure(p.Group).passed++
	}
	sort.Strings(order)
	summary := ValidationSummary{}
	for _, key := range order {
		c := byKey[key]
		status := "passed"
		switch {
		case c.errored > 0:
			status = "failed"
		case c.violated > 0:
			status = "partial"
		}
		summary.Groups = append(summary.Groups, GroupStatus{
			Key: key, Title: c.title, Passed: c.passed, Violated: c.violated, Errored: c.errored, Status: status,
		})
	}
	return summary
}
