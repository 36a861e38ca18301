package shiftsat

import (
	"fmt"
	"sort"
	"strings"
)

// ShiftAssignment is one resolved (member, pattern, day) assignment decoded
// from a SolverResponse's Values map.
type ShiftAssignment struct {
	MemberID  string
	PatternID string
	Day       string
	Pattern   ShiftPattern
}

// AnalysisResult is the full output of analyzing a solved request: the
// decoded assignments, the reporter's post-solve validation summary, and
// any Validator-rule findings that fall outside the tracked-constraint
// mechanism.
type AnalysisResult struct {
	Status      SolverStatus
	Assignments []ShiftAssignment
	Summary     ValidationSummary
	Findings    []ValidationFinding
}

// Analyze decodes a SolverResponse against this Builder's compiled model:
// on a non-OPTIMAL/FEASIBLE status it records a solver error and returns
// early; otherwise it resolves assignments, runs the reporter's tracked
// soft-constraint analysis, and invokes every Validator rule.
func (b *Builder) Analyze(resp SolverResponse) (AnalysisResult, error) {
	if !b.compiled {
		return AnalysisResult{}, fmt.Errorf("shiftsat: Analyze called before Compile")
	}
	result := AnalysisResult{Status: resp.Status}

	switch resp.Status {
	case StatusOptimal, StatusFeasible:
	case StatusInfeasible, StatusTimeout, StatusError:
		reason := resp.Error
		if reason == "" {
			reason = string(resp.Status)
		}
		b.reporter.ReportSolverError(reason)
		result.Summary = b.reporter.SummarizeValidation()
		return result, nil
	default:
		b.reporter.ReportSolverError("unrecognized solver status: " + string(resp.Status))
		result.Summary = b.reporter.SummarizeValidation()
		return result, nil
	}

	assignments, err := b.resolveAssignments(resp)
	if err != nil {
		return AnalysisResult{}, err
	}
	result.Assignments = assignments

	b.reporter.AnalyzeSolution(resp)

	for _, rule := range b.rules {
		validator, ok := rule.(Validator)
		if !ok {
			continue
		}
		result.Findings = append(result.Findings, validator.Validate(b, assignments)...)
	}

	result.Summary = b.reporter.SummarizeValidation()
	return result, nil
}

// resolveAssignments decodes every true-valued assign:<member>:<pattern>:<day>
// variable in resp.Values into a ShiftAssignment, joined against this
// Builder's pattern universe. Variable names are parsed by strict
// colon-split rather than regex, matching the grammar's reserved-":"
// invariant.
func (b *Builder) resolveAssignments(resp SolverResponse) ([]ShiftAssignment, error) {
	var out []ShiftAssignment
	for name, v := range resp.Values {
		if v == 0 {
			continue
		}
		if !strings.HasPrefix(name, "assign:") {
			continue
		}
		parts := strings.Split(name, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("shiftsat: malformed assignment variable %q", name)
		}
		memberID, patternID, day := parts[1], parts[2], parts[3]
		if _, err := parseDayString(day); err != nil {
			return nil, fmt.Errorf("shiftsat: malformed assignment variable %q: %w", name, err)
		}
		pattern, ok := b.patternByID[patternID]
		if !ok {
			return nil, fmt.Errorf("shiftsat: assignment variable %q references unknown pattern %q", name, patternID)
		}
		out = append(out, ShiftAssignment{MemberID: memberID, PatternID: patternID, Day: day, Pattern: pattern})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		if out[i].MemberID != out[j].MemberID {
			return out[i].MemberID < out[j].MemberID
		}
		return out[i].PatternID < out[j].PatternID
	})
	return out, nil
}
