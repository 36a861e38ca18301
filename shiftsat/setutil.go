package shiftsat

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// sortedCopy returns a deduplicated, ascending-sorted copy of ss. Every "set
// of members/patterns/days/bucket starts" whose iteration order affects
// emitted variable names or ids must be sorted through this helper (or one
// of sortedMemberIDs/sortedPatternIDs/sortedInts below), per the
// determinism requirement on set iteration.
func sortedCopy(ss []string) []string {
	out := lo.Uniq(ss)
	sort.Strings(out)
	return out
}

// joinOrPlaceholder lowercases and joins a sorted string slice with commas,
// rendering "_" for an empty slice, matching the deterministic item-id
// grammar ("_" placeholder for absent fields).
func joinOrPlaceholder(ss []string) string {
	if len(ss) == 0 {
		return "_"
	}
	lowered := lo.Map(ss, func(s string, _ int) string { return strings.ToLower(s) })
	sort.Strings(lowered)
	return strings.Join(lowered, ",")
}

// sortedMemberIDs returns the sorted, deduplicated ids of a member slice.
func sortedMemberIDs(members []Member) []string {
	ids := lo.Map(members, func(m Member, _ int) string { return m.ID })
	return sortedCopy(ids)
}

// sortedPatternIDs returns the sorted, deduplicated ids of a pattern slice.
func sortedPatternIDs(patterns []ShiftPattern) []string {
	ids := lo.Map(patterns, func(p ShiftPattern, _ int) string { return p.ID })
	return sortedCopy(ids)
}

// sortedInts returns an ascending-sorted copy of a set of ints (e.g. bucket
// start minutes) built from a map key set or similar unordered source.
func sortedInts(xs []int) []int {
	out := lo.Uniq(xs)
	sort.Ints(out)
	return out
}

// intersects reports whether two string sets share at least one element
// (case-sensitive; callers normalize case upstream where needed).
func intersects(a, b []string) bool {
	set := lo.SliceToMap(b, func(s string) (string, struct{}) { return s, struct{}{} })
	for _, s := range a {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

// supersetOf reports whether superset contains every element of subset.
func supersetOf(superset, subset []string) bool {
	set := lo.SliceToMap(superset, func(s string) (string, struct{}) { return s, struct{}{} })
	for _, s := range subset {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}
