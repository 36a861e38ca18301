package shiftsat

import "fmt"

// variableStore keeps each wire Variable with the parameters it was created
// with, so a second declaration under the same name can be checked for
// conflicts (the "interning is the locking discipline" invariant).
type variableStore struct {
	byName map[string]Variable
	order  []string // insertion order; variables are emitted in this order
}

func newVariableStore() *variableStore {
	return &variableStore{byName: make(map[string]Variable)}
}

// internBool interns a boolean decision variable, returning its name.
func (s *variableStore) internBool(name string) (string, error) {
	return name, s.intern(Variable{Type: VarBool, Name: name})
}

// internInt interns an integer decision variable with bounds [lo, hi].
func (s *variableStore) internInt(name string, lo, hi int) (string, error) {
	return name, s.intern(Variable{Type: VarInt, Name: name, Min: lo, Max: hi})
}

// internInterval interns an optional interval variable. presenceVar may be
// empty to denote an always-present interval.
func (s *variableStore) internInterval(name string, start, end int, presenceVar string) (string, error) {
	return name, s.intern(Variable{Type: VarInterval, Name: name, Start: start, End: end, Size: end - start, PresenceVar: presenceVar})
}

func (s *variableStore) intern(v Variable) error {
	existing, ok := s.byName[v.Name]
	if !ok {
		s.byName[v.Name] = v
		s.order = append(s.order, v.Name)
		return nil
	}
	if existing != v {
		return fmt.Errorf("%w: %q (existing %+v, requested %+v)", ErrVariableConflict, v.Name, existing, v)
	}
	return nil
}

// has reports whether a variable has already been interned under name.
func (s *variableStore) has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// all returns the interned variables in declaration order.
func (s *variableStore) all() []Variable {
	out := make([]Variable, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Variable-name grammar helpers (§6). Centralizing these avoids ad hoc
// string formatting drifting from the wire grammar across rule files.

func assignVarName(memberID, patternID, day string) string {
	return "assign:" + memberID + ":" + patternID + ":" + day
}

func shiftVarName(patternID, day string) string {
	return "shift:" + patternID + ":" + day
}

func intervalVarName(memberID, patternID, day string) string {
	return "interval:" + memberID + ":" + patternID + ":" + day
}

const fairnessMaxAssignmentsVar = "fairness:max_assignments"

func infeasibleVarName(qualifierKey, day string, bucketStart *int) string {
	name := "infeasible:coverage:" + qualifierKey + ":" + day
	if bucketStart != nil {
		name += ":" + fmt.Sprint(*bucketStart)
	}
	return name
}

func coverageConstraintID(qualifierKey, day string, bucketStart int) string {
	return "coverage:" + qualifierKey + ":" + day + ":" + fmt.Sprint(bucketStart)
}
