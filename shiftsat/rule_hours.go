package shiftsat

import "fmt"

func init() {
	RegisterRule("max-hours-day", newHoursRule(hoursKindMaxDay))
	RegisterRule("min-hours-day", newHoursRule(hoursKindMinDay))
	RegisterRule("max-hours-week", newHoursRule(hoursKindMaxWeek))
	RegisterRule("min-hours-week", newHoursRule(hoursKindMinWeek))
	RegisterRule("max-shifts-day", newHoursRule(hoursKindMaxShiftsDay))
}

type hoursKind int

const (
	hoursKindMaxDay hoursKind = iota
	hoursKindMinDay
	hoursKindMaxWeek
	hoursKindMinWeek
	hoursKindMaxShiftsDay
)

// hoursRule bounds a member's assigned minutes (or shift count) per day or
// per week, hard if Priority is MANDATORY and soft otherwise (§4.5).
type hoursRule struct {
	kind      hoursKind
	name      string
	scope     EntityScope
	threshold int
	priority  Priority
}

func newHoursRule(kind hoursKind) func(params map[string]any) (Rule, error) {
	return func(params map[string]any) (Rule, error) {
		name, err := paramString(params, "name", true)
		if err != nil {
			return nil, err
		}
		scope, err := parseEntityScopeParam(params)
		if err != nil {
			return nil, err
		}
		threshold, err := paramInt(params, "threshold", 0)
		if err != nil {
			return nil, err
		}
		priority, err := parsePriorityParam(params)
		if err != nil {
			return nil, err
		}
		return &hoursRule{kind: kind, name: name, scope: scope, threshold: threshold, priority: priority}, nil
	}
}

func (r *hoursRule) Name() string { return r.name }

func (r *hoursRule) Compile(b *Builder) error {
	members, err := b.ResolveMembers(r.scope)
	if err != nil {
		return err
	}
	switch r.kind {
	case hoursKindMaxDay:
		return r.compilePerDay(b, members, ComparatorLE)
	case hoursKindMinDay:
		return r.compilePerDay(b, members, ComparatorGE)
	case hoursKindMaxShiftsDay:
		return r.compileShiftsPerDay(b, members)
	case hoursKindMaxWeek:
		return r.compilePerWeek(b, members, ComparatorLE)
	case hoursKindMinWeek:
		return r.compilePerWeek(b, members, ComparatorGE)
	}
	return fmt.Errorf("shiftsat: unknown hours rule kind %d", r.kind)
}

func (r *hoursRule) compilePerDay(b *Builder, members []Member, op Comparator) error {
	for _, m := range members {
		for _, d := range b.Days() {
			terms := minutesTerms(b, m, d)
			if len(terms) == 0 {
				continue
			}
			r.emit(b, terms, op, d.ISO, m.ID)
		}
	}
	return nil
}

func (r *hoursRule) compileShiftsPerDay(b *Builder, members []Member) error {
	for _, m := range members {
		for _, d := range b.Days() {
			var terms []Term
			for _, p := range b.Patterns() {
				if !b.eligible(m, p, d) {
					continue
				}
				terms = append(terms, Term{Var: assignVarName(m.ID, p.ID, d.ISO), Coeff: 1})
			}
			if len(terms) == 0 {
				continue
			}
			r.emit(b, terms, ComparatorLE, d.ISO, m.ID)
		}
	}
	return nil
}

func (r *hoursRule) compilePerWeek(b *Builder, members []Member, op Comparator) error {
	for _, week := range weekWindows(b.Days(), b.WeekStartsOn()) {
		for _, m := range members {
			var terms []Term
			for _, d := range week {
				terms = append(terms, minutesTerms(b, m, d)...)
			}
			if len(terms) == 0 {
				continue
			}
			r.emit(b, terms, op, week[0].ISO+".."+week[len(week)-1].ISO, m.ID)
		}
	}
	return nil
}

func (r *hoursRule) emit(b *Builder, terms []Term, op Comparator, windowLabel, memberID string) {
	if r.priority == PriorityMandatory {
		b.AddLinear(terms, op, r.threshold)
		return
	}
	id := "rule:" + r.name + ":" + memberID + ":" + windowLabel
	penalty := priorityToPenalty(r.priority)
	b.AddSoftLinear(terms, op, r.threshold, penalty, id)
	b.Reporter().TrackConstraint(TrackedConstraint{
		ID: id, Description: fmt.Sprintf("%s for %s over %s", r.name, memberID, windowLabel),
		Target: r.threshold, Comparator: op, Day: windowLabel, Context: r.name,
	})
}

// minutesTerms returns the assign-variable terms (weighted by shift
// duration) contributing to member m's worked minutes on day d.
func minutesTerms(b *Builder, m Member, d Day) []Term {
	var terms []Term
	for _, p := range b.Patterns() {
		if !b.eligible(m, p, d) {
			continue
		}
		terms = append(terms, Term{Var: assignVarName(m.ID, p.ID, d.ISO), Coeff: b.PatternDuration(p)})
	}
	return terms
}
