package shiftsat

import "fmt"

func init() {
	RegisterRule("assign-together", newAssignTogetherRule)
}

// assignTogetherRule links two members' assignments: whenever either works
// a given (pattern, day), so must the other, for every pattern/day both are
// independently eligible for. Expressed as a pair of implications rather
// than a single equality constraint, matching the wire schema's available
// primitives.
type assignTogetherRule struct {
	name      string
	memberA   string
	memberB   string
	timeScope TimeScope
}

func newAssignTogetherRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	memberA, err := paramString(params, "memberA", true)
	if err != nil {
		return nil, err
	}
	memberB, err := paramString(params, "memberB", true)
	if err != nil {
		return nil, err
	}
	timeScope, err := parseTimeScopeParam(params)
	if err != nil {
		return nil, err
	}
	return &assignTogetherRule{name: name, memberA: memberA, memberB: memberB, timeScope: timeScope}, nil
}

func (r *assignTogetherRule) Name() string { return r.name }

func (r *assignTogetherRule) Compile(b *Builder) error {
	days, err := b.ResolveActiveDays(r.timeScope)
	if err != nil {
		return err
	}
	a, aok := b.memberByID[r.memberA]
	c, cok := b.memberByID[r.memberB]
	if !aok || !cok {
		return newRuleError(r.name, fmt.Errorf("assign-together requires two known member ids, got %q and %q", r.memberA, r.memberB))
	}
	for _, p := range b.Patterns() {
		for _, d := range days {
			if !b.eligible(a, p, d) || !b.eligible(c, p, d) {
				continue
			}
			av := assignVarName(r.memberA, p.ID, d.ISO)
			cv := assignVarName(r.memberB, p.ID, d.ISO)
			b.AddImplication(av, cv)
			b.AddImplication(cv, av)
		}
	}
	return nil
}
