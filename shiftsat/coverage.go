package shiftsat

import (
	"fmt"
	"sort"
)

// patternOverlapsBucket implements Testable Property 6: pattern [s,e) and
// bucket [bucketStart, bucketStart+width) overlap iff
// max(s,bucketStart) < min(e,bucketStart+width), or — for an overnight
// pattern whose normalized end exceeds MinutesPerDay — the pattern's
// spillover portion [0, e-MinutesPerDay) also overlaps the bucket.
func patternOverlapsBucket(p ShiftPattern, bucketStart, width int) bool {
	end := p.NormalizedEnd()
	if rangesOverlap(p.Start, end, bucketStart, bucketStart+width) {
		return true
	}
	return isOvernight(end) && rangesOverlap(0, end-MinutesPerDay, bucketStart, bucketStart+width)
}

// bucketPatternMap is the once-per-bucket-size precomputed table from
// bucket-start (0..MinutesPerDay step width) to the patterns overlapping it.
type bucketPatternMap map[int][]ShiftPattern

func buildBucketPatternMap(patterns []ShiftPattern, width int) bucketPatternMap {
	m := make(bucketPatternMap)
	for start := 0; start < MinutesPerDay; start += width {
		var overlapping []ShiftPattern
		for _, p := range patterns {
			if patternOverlapsBucket(p, start, width) {
				overlapping = append(overlapping, p)
			}
		}
		m[start] = overlapping
	}
	return m
}

// bucketIssueKey identifies one (day, qualifier, reason) group whose
// bucket-start set gets collapsed into contiguous ranges for a single
// coverage error.
type bucketIssueKey struct {
	day          string
	qualifierKey string
	reason       string
}

// compileCoverage implements §4.6 step 4: bucketed coverage emission.
func (b *Builder) compileCoverage() {
	bucketMaps := make(map[int]bucketPatternMap)
	getBucketMap := func(width int) bucketPatternMap {
		if m, ok := bucketMaps[width]; ok {
			return m
		}
		m := buildBucketPatternMap(b.patterns, width)
		bucketMaps[width] = m
		return m
	}
	bucketMap := getBucketMap(b.bucketMinutes)

	resolved := resolveCoverageRequirements(b.coverageSpecs, b.semanticTimes, b.days)
	issues := make(map[bucketIssueKey][]int) // reason-grouped bucket starts, per (day, qualifier)

	for _, cov := range resolved {
		b.compileOneCoverage(cov, bucketMap, issues)
	}

	b.emitCoverageErrorsFromIssues(issues, resolved)
}

func (b *Builder) compileOneCoverage(cov ResolvedCoverage, bucketMap bucketPatternMap, issues map[bucketIssueKey][]int) {
	qualifierKey := qualifierKeyFor(cov.Roles, cov.Skills)
	eligible := eligibleMembersForQualifier(b.members, cov.Roles, cov.Skills)

	if len(eligible) == 0 && cov.Priority == PriorityMandatory && cov.Count > 0 {
		b.emitInfeasibleMarker(qualifierKey, cov.Day.ISO, nil, cov.Count)
		b.reporter.ReportCoverageError(cov.Day.ISO, nil, cov.Roles, cov.Skills, "no_assignable", cov.Group,
			"add a member with the required role/skill qualifier", "relax the coverage qualifier")
		return
	}

	covEnd := normalizeEndMinutes(cov.Start, cov.End)
	width := b.bucketMinutes

	for t := cov.Start; t < covEnd; t += width {
		bucketKey := ((t % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
		patterns := bucketMap[bucketKey]

		var availablePatterns []ShiftPattern
		for _, p := range patterns {
			if b.PatternAvailableOnDay(p, cov.Day) {
				availablePatterns = append(availablePatterns, p)
			}
		}

		var assignableEligible []Member
		for _, m := range eligible {
			if memberCanAssignAny(b, m, availablePatterns) {
				assignableEligible = append(assignableEligible, m)
			}
		}

		bucketEnd := t + width
		if bucketEnd > covEnd {
			bucketEnd = covEnd
		}
		var effective []Member
		for _, m := range assignableEligible {
			if !b.reporter.Excludes(m.ID, cov.Day.ISO, t, bucketEnd) {
				effective = append(effective, m)
			}
		}

		reason := ""
		switch {
		case len(availablePatterns) == 0:
			reason = "no_patterns"
		case len(assignableEligible) == 0:
			reason = "no_assignable"
		case len(effective) == 0:
			reason = "mandatory_time_off"
		case len(effective) < cov.Count:
			reason = fmt.Sprintf("insufficient:%d", cov.Count)
		}

		if reason != "" && cov.Priority == PriorityMandatory {
			key := bucketIssueKey{day: cov.Day.ISO, qualifierKey: qualifierKey, reason: reason}
			issues[key] = append(issues[key], t)
			b.emitInfeasibleMarker(qualifierKey, cov.Day.ISO, &t, cov.Count)
			continue
		}

		var terms []Term
		for _, m := range effective {
			for _, p := range availablePatterns {
				if !b.canAssignFn(m, p) {
					continue
				}
				name := assignVarName(m.ID, p.ID, cov.Day.ISO)
				if !b.vars.has(name) {
					continue // ineligible overall (e.g. pattern unavailable another way); defensive skip
				}
				terms = append(terms, Term{Var: name, Coeff: 1})
			}
		}

		constraintID := coverageConstraintID(qualifierKey, cov.Day.ISO, t)
		if cov.Priority == PriorityMandatory {
			b.AddLinear(terms, ComparatorGE, cov.Count)
			continue
		}
		penalty := priorityToPenalty(cov.Priority)
		b.AddSoftLinear(terms, ComparatorGE, cov.Count, penalty, constraintID)
		b.reporter.TrackConstraint(TrackedConstraint{
			ID: constraintID, Description: fmt.Sprintf("coverage %s on %s at %d", qualifierKey, cov.Day.ISO, t),
			Target: cov.Count, Comparator: ComparatorGE, Day: cov.Day.ISO, TimeSlot: fmt.Sprint(t),
			Qualifier: qualifierKey, Context: qualifierKey, Group: cov.Group,
		})
	}
}

func (b *Builder) emitInfeasibleMarker(qualifierKey, day string, bucketStart *int, target int) {
	name := infeasibleVarName(qualifierKey, day, bucketStart)
	if _, err := b.vars.internInt(name, 0, 0); err != nil {
		b.log.WithError(err).Error("failed to intern infeasible marker")
		return
	}
	b.AddLinear([]Term{{Var: name, Coeff: 1}}, ComparatorGE, target)
}

// emitCoverageErrorsFromIssues collapses each (day, qualifier, reason)
// issue's bucket-start set into contiguous ranges and records one coverage
// error per collapsed range set.
func (b *Builder) emitCoverageErrorsFromIssues(issues map[bucketIssueKey][]int, resolved []ResolvedCoverage) {
	groupByKey := make(map[string]*ValidationGroup)
	for _, cov := range resolved {
		groupByKey[cov.Day.ISO+"|"+qualifierKeyFor(cov.Roles, cov.Skills)] = cov.Group
	}
	var rolesSkillsByQualifier = make(map[string][2][]string)
	for _, cov := range resolved {
		rolesSkillsByQualifier[qualifierKeyFor(cov.Roles, cov.Skills)] = [2][]string{cov.Roles, cov.Skills}
	}

	keys := make([]bucketIssueKey, 0, len(issues))
	for k := range issues {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		if keys[i].qualifierKey != keys[j].qualifierKey {
			return keys[i].qualifierKey < keys[j].qualifierKey
		}
		return keys[i].reason < keys[j].reason
	})

	for _, k := range keys {
		starts := sortedInts(issues[k])
		ranges := collapseContiguous(starts, b.bucketMinutes)
		timeSlots := make([]string, len(ranges))
		for i, r := range ranges {
			last := r[1] - b.bucketMinutes
			capEnd := 0
			for _, cov := range resolved {
				if cov.Day.ISO != k.day || qualifierKeyFor(cov.Roles, cov.Skills) != k.qualifierKey {
					continue
				}
				if covEnd := normalizeEndMinutes(cov.Start, cov.End); cov.Start <= last && last < covEnd && covEnd > capEnd {
					capEnd = covEnd
				}
			}
			if capEnd > 0 && capEnd < r[1] {
				r[1] = capEnd
			}
			timeSlots[i] = fmt.Sprintf("%02d:%02d-%02d:%02d", r[0]/60%24, r[0]%60, (r[1]/60)%24, r[1]%60)
		}
		rs := rolesSkillsByQualifier[k.qualifierKey]
		group := groupByKey[k.day+"|"+k.qualifierKey]
		b.reporter.ReportCoverageError(k.day, timeSlots, rs[0], rs[1], k.reason, group)
	}
}

// collapseContiguous merges bucket-adjacent start times into [start,end)
// ranges, where a run continues while the next start equals the previous
// start + bucket width; each range ends one bucket width after its last
// start (emitCoverageErrorsFromIssues caps it at the coverage window's end).
func collapseContiguous(starts []int, width int) [][2]int {
	var ranges [][2]int
	for i := 0; i < len(starts); {
		j := i
		for j+1 < len(starts) && starts[j+1] == starts[j]+width {
			j++
		}
		ranges = append(ranges, [2]int{starts[i], starts[j] + width})
		i = j + 1
	}
	return ranges
}

// eligibleMembersForQualifier implements the coverage qualifier match: a
// non-empty Roles set OR-matches, optionally AND-combined with Skills; a
// Roles-empty, Skills-only qualifier AND-matches skills alone.
func eligibleMembersForQualifier(members []Member, roles, skills []string) []Member {
	var out []Member
	for _, m := range members {
		if len(roles) > 0 {
			if !intersects(m.Roles, roles) {
				continue
			}
			if len(skills) > 0 && !supersetOf(m.Skills, skills) {
				continue
			}
			out = append(out, m)
			continue
		}
		if len(skills) > 0 && supersetOf(m.Skills, skills) {
			out = append(out, m)
		}
	}
	orderMembersByID(out)
	return out
}

func memberCanAssignAny(b *Builder, m Member, patterns []ShiftPattern) bool {
	for _, p := range patterns {
		if b.canAssignFn(m, p) {
			return true
		}
	}
	return false
}
