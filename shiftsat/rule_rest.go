package shiftsat

import "fmt"

func init() {
	RegisterRule("min-rest-between-shifts", newMinRestRule)
}

// minRestRule forbids a member from working two shifts whose gap (on the
// horizon-wide global-minute axis) is shorter than RestMinutes, for any
// pair of that member's eligible (pattern, day) intervals — not only
// day-adjacent ones, since two same-day overlapping-eligible patterns or a
// short multi-day gap both need the same treatment.
type minRestRule struct {
	name        string
	scope       EntityScope
	restMinutes int
	priority    Priority
}

func newMinRestRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	scope, err := parseEntityScopeParam(params)
	if err != nil {
		return nil, err
	}
	rest, err := paramInt(params, "restMinutes", 0)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriorityParam(params)
	if err != nil {
		return nil, err
	}
	return &minRestRule{name: name, scope: scope, restMinutes: rest, priority: priority}, nil
}

func (r *minRestRule) Name() string { return r.name }

type memberInterval struct {
	assignVar  string
	start, end int
}

func (r *minRestRule) Compile(b *Builder) error {
	members, err := b.ResolveMembers(r.scope)
	if err != nil {
		return err
	}
	for _, m := range members {
		intervals := r.memberIntervals(b, m)
		for i := 0; i < len(intervals); i++ {
			for j := i + 1; j < len(intervals); j++ {
				a, c := intervals[i], intervals[j]
				if a.start > c.start {
					a, c = c, a
				}
				if c.start-a.end >= r.restMinutes {
					continue
				}
				r.emitConflict(b, m.ID, a, c)
			}
		}
	}
	return nil
}

func (r *minRestRule) memberIntervals(b *Builder, m Member) []memberInterval {
	var out []memberInterval
	for _, p := range b.Patterns() {
		for _, d := range b.Days() {
			if !b.eligible(m, p, d) {
				continue
			}
			offset := dayOffsetMinutes(d.Index)
			out = append(out, memberInterval{
				assignVar: assignVarName(m.ID, p.ID, d.ISO),
				start:     offset + p.Start,
				end:       offset + p.NormalizedEnd(),
			})
		}
	}
	return out
}

func (r *minRestRule) emitConflict(b *Builder, memberID string, a, c memberInterval) {
	if r.priority == PriorityMandatory {
		b.AddAtMostOne([]string{a.assignVar, c.assignVar})
		return
	}
	id := fmt.Sprintf("rule:%s:%s:%d-%d", r.name, memberID, a.start, c.end)
	terms := []Term{{Var: a.assignVar, Coeff: 1}, {Var: c.assignVar, Coeff: 1}}
	b.AddSoftLinear(terms, ComparatorLE, 1, priorityToPenalty(r.priority), id)
	b.Reporter().TrackConstraint(TrackedConstraint{
		ID: id, Description: fmt.Sprintf("%s for %s", r.name, memberID),
		Target: 1, Comparator: ComparatorLE, Context: r.name,
	})
}
