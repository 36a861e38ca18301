package shiftsat

import "fmt"

func init() {
	RegisterRule("max-consecutive-days", newConsecutiveRule(consecutiveKindMax))
	RegisterRule("min-consecutive-days", newConsecutiveRule(consecutiveKindMin))
}

type consecutiveKind int

const (
	consecutiveKindMax consecutiveKind = iota
	consecutiveKindMin
)

// consecutiveRule bounds how many adjacent horizon days a member may (or
// must) work in a row. It always applies over the whole horizon, whose days
// are contiguous calendar days.
type consecutiveRule struct {
	kind      consecutiveKind
	name      string
	scope     EntityScope
	threshold int
	priority  Priority
}

func newConsecutiveRule(kind consecutiveKind) func(params map[string]any) (Rule, error) {
	return func(params map[string]any) (Rule, error) {
		name, err := paramString(params, "name", true)
		if err != nil {
			return nil, err
		}
		scope, err := parseEntityScopeParam(params)
		if err != nil {
			return nil, err
		}
		threshold, err := paramInt(params, "threshold", 1)
		if err != nil {
			return nil, err
		}
		priority, err := parsePriorityParam(params)
		if err != nil {
			return nil, err
		}
		return &consecutiveRule{kind: kind, name: name, scope: scope, threshold: threshold, priority: priority}, nil
	}
}

func (r *consecutiveRule) Name() string { return r.name }

func (r *consecutiveRule) Compile(b *Builder) error {
	members, err := b.ResolveMembers(r.scope)
	if err != nil {
		return err
	}
	days := b.Days()
	for _, m := range members {
		works := make([]string, len(days))
		for i, d := range days {
			works[i] = b.worksVar(m.ID, d, r.name)
		}
		if r.kind == consecutiveKindMax {
			r.compileMax(b, m.ID, works, days)
		} else {
			r.compileMin(b, m.ID, works, days)
		}
	}
	return nil
}

// compileMax asserts, for every window of threshold+1 adjacent days, that at
// most threshold of them are worked.
func (r *consecutiveRule) compileMax(b *Builder, memberID string, works []string, days []Day) {
	window := r.threshold + 1
	if window > len(works) {
		return
	}
	for start := 0; start+window <= len(works); start++ {
		var terms []Term
		for _, w := range works[start : start+window] {
			terms = append(terms, Term{Var: w, Coeff: 1})
		}
		label := days[start].ISO + ".." + days[start+window-1].ISO
		if r.priority == PriorityMandatory {
			b.AddLinear(terms, ComparatorLE, r.threshold)
			continue
		}
		id := "rule:" + r.name + ":" + memberID + ":" + label
		b.AddSoftLinear(terms, ComparatorLE, r.threshold, priorityToPenalty(r.priority), id)
		b.Reporter().TrackConstraint(TrackedConstraint{
			ID: id, Description: fmt.Sprintf("%s for %s over %s", r.name, memberID, label),
			Target: r.threshold, Comparator: ComparatorLE, Day: label, Context: r.name,
		})
	}
}

// compileMin forces any run that starts working to continue for at least
// threshold days, via forward-looking implications from each streak start
// on the second horizon day onward; a run already under way on the first
// horizon day is not constrained.
// A streak that starts within threshold-1 days of the horizon's end cannot
// be fully enforced past the horizon boundary; those trailing days are left
// unconstrained rather than rejected.
func (r *consecutiveRule) compileMin(b *Builder, memberID string, works []string, days []Day) {
	if r.threshold <= 1 {
		return
	}
	for i := 1; i < len(works); i++ {
		startVar, err := b.NewBoolVar(fmt.Sprintf("streakstart:%s:%s:%s", r.name, memberID, days[i].ISO))
		if err != nil {
			continue
		}
		// start >= works[i] - works[i-1]
		b.AddLinear([]Term{{Var: startVar, Coeff: 1}, {Var: works[i], Coeff: -1}, {Var: works[i-1], Coeff: 1}}, ComparatorGE, 0)
		// start <= works[i]
		b.AddLinear([]Term{{Var: startVar, Coeff: 1}, {Var: works[i], Coeff: -1}}, ComparatorLE, 0)
		for k := 1; k < r.threshold && i+k < len(works); k++ {
			b.AddImplication(startVar, works[i+k])
		}
	}
}

// worksVar interns (or reuses) a boolean "member works this day" variable,
// tied to assign(m,p,d) for every eligible pattern via
// assign -> works (so any assignment forces it true) and
// works <= sum(assign) (so it can't be forced true without one).
func (b *Builder) worksVar(memberID string, d Day, ruleName string) string {
	name := "works:" + memberID + ":" + d.ISO
	if b.vars.has(name) {
		return name
	}
	if _, err := b.NewBoolVar(name); err != nil {
		return name
	}
	m, ok := b.memberByID[memberID]
	if !ok {
		return name
	}
	var sumTerms []Term
	for _, p := range b.Patterns() {
		if !b.eligible(m, p, d) {
			continue
		}
		assignVar := assignVarName(memberID, p.ID, d.ISO)
		b.AddImplication(assignVar, name)
		sumTerms = append(sumTerms, Term{Var: assignVar, Coeff: -1})
	}
	sumTerms = append(sumTerms, Term{Var: name, Coeff: 1})
	b.AddLinear(sumTerms, ComparatorLE, 0)
	return name
}
