package shiftsat

import "fmt"

func init() {
	RegisterRule("assignment-preference", newAssignmentPreferenceRule)
	RegisterRule("location-preference", newLocationPreferenceRule)
}

// assignmentPreferenceRule prefers a named member for a named pattern by
// penalizing every other eligible member's assignment to that pattern, on
// the days the TimeScope selects (default: the whole horizon). It never
// forbids the alternative, only makes it costlier.
type assignmentPreferenceRule struct {
	name      string
	memberID  string
	patternID string
	timeScope TimeScope
}

func newAssignmentPreferenceRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	memberID, err := paramString(params, "memberId", true)
	if err != nil {
		return nil, err
	}
	patternID, err := paramString(params, "patternId", true)
	if err != nil {
		return nil, err
	}
	timeScope, err := parseTimeScopeParam(params)
	if err != nil {
		return nil, err
	}
	return &assignmentPreferenceRule{name: name, memberID: memberID, patternID: patternID, timeScope: timeScope}, nil
}

func (r *assignmentPreferenceRule) Name() string { return r.name }

func (r *assignmentPreferenceRule) Compile(b *Builder) error {
	days, err := b.ResolveActiveDays(r.timeScope)
	if err != nil {
		return err
	}
	var pattern *ShiftPattern
	for _, p := range b.Patterns() {
		if p.ID == r.patternID {
			cp := p
			pattern = &cp
			break
		}
	}
	if pattern == nil {
		return newRuleError(r.name, fmt.Errorf("unknown pattern id %q", r.patternID))
	}
	for _, m := range b.Members() {
		if m.ID == r.memberID {
			continue
		}
		for _, d := range days {
			if !b.eligible(m, *pattern, d) {
				continue
			}
			b.AddPenalty(assignVarName(m.ID, r.patternID, d.ISO), PenaltyAssignmentPreference)
		}
	}
	return nil
}

// locationPreferenceRule penalizes a scoped member set's assignments to any
// pattern whose Location doesn't match the preferred one.
type locationPreferenceRule struct {
	name     string
	scope    EntityScope
	location string
}

func newLocationPreferenceRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	scope, err := parseEntityScopeParam(params)
	if err != nil {
		return nil, err
	}
	location, err := paramString(params, "location", true)
	if err != nil {
		return nil, err
	}
	return &locationPreferenceRule{name: name, scope: scope, location: location}, nil
}

func (r *locationPreferenceRule) Name() string { return r.name }

func (r *locationPreferenceRule) Compile(b *Builder) error {
	members, err := b.ResolveMembers(r.scope)
	if err != nil {
		return err
	}
	for _, m := range members {
		for _, p := range b.Patterns() {
			if p.Location == r.location {
				continue
			}
			for _, d := range b.Days() {
				if !b.eligible(m, p, d) {
					continue
				}
				b.AddPenalty(assignVarName(m.ID, p.ID, d.ISO), PenaltyAssignmentPreference)
			}
		}
	}
	return nil
}
