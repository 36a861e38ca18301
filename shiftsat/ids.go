package shiftsat

import (
	"fmt"
	"strings"
)

// ItemCategory is the first segment of every deterministic item id.
type ItemCategory string

const (
	CategoryError     ItemCategory = "error"
	CategoryViolation ItemCategory = "violation"
	CategoryPassed    ItemCategory = "passed"
	CategoryExclusion ItemCategory = "exclusion"
)

// coverageItemID computes a stable id for a coverage-shaped item (error,
// violation, or passed entry tied to a day + time window + qualifier),
// following the grammar
// "<category>:coverage:<day|_>:<timeSlots,…|_>:<roles,…|_>:<skills,…|_>".
// Arrays are lowercased and sorted before joining, and every absent field of
// this item's declared shape renders as "_", so permuting an input array
// never changes the resulting id.
func coverageItemID(category ItemCategory, day string, timeSlots, roles, skills []string) string {
	fields := []string{string(category), "coverage", placeholderOr(day), joinOrPlaceholder(timeSlots), joinOrPlaceholder(roles), joinOrPlaceholder(skills)}
	return strings.Join(fields, ":")
}

// ruleItemID computes a stable id for a rule-shaped item (violation or
// passed entry tied to a named rule plus the days/members it concerns),
// following "<category>:rule:<ruleName>:<dates,…|_>:<members,…|_>". Rule
// items have no time-of-day or skill dimension, so those trailing fields of
// the general coverage grammar are omitted rather than rendered as "_".
func ruleItemID(category ItemCategory, ruleName string, dates, members []string) string {
	fields := []string{string(category), "rule", ruleName, joinOrPlaceholder(dates), joinOrPlaceholder(members)}
	return strings.Join(fields, ":")
}

// exclusionItemID computes a stable id for a (member, day, window) exclusion
// recorded by a rule via reporter.excludeFromCoverage.
func exclusionItemID(member, day string, window [2]int) string {
	fields := []string{string(CategoryExclusion), member, placeholderOr(day), windowToken(window)}
	return strings.Join(fields, ":")
}

func windowToken(window [2]int) string {
	if window == [2]int{} {
		return "_"
	}
	return fmt.Sprintf("%d-%d", window[0], window[1])
}

func placeholderOr(s string) string {
	if s == "" {
		return "_"
	}
	return s
}
