package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func simpleCfg() Config {
	return Config{
		Members: []Member{
			{ID: "alice", Roles: []string{"nurse"}},
			{ID: "bob", Roles: []string{"nurse"}},
		},
		Patterns: []ShiftPattern{
			{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}},
		},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-06",
		Coverage: []CoverageSpec{
			{Start: 8 * 60, End: 16 * 60, Target: 1, Priority: PriorityMandatory, Roles: []string{"nurse"}},
		},
	}
}

func TestNewBuilderRejectsDuplicateMemberID(t *testing.T) {
	cfg := simpleCfg()
	cfg.Members = append(cfg.Members, Member{ID: "alice", Roles: []string{"nurse"}})
	_, err := NewBuilder(cfg)
	require.Error(t, err)
}

func TestNewBuilderRejectsBadBucketSize(t *testing.T) {
	cfg := simpleCfg()
	cfg.BucketMinutes = 7
	_, err := NewBuilder(cfg)
	require.Error(t, err)
}

func TestNewBuilderDefaults(t *testing.T) {
	b, err := NewBuilder(simpleCfg())
	require.NoError(t, err)
	require.Equal(t, DefaultBucketMinutes, b.bucketMinutes)
	require.Equal(t, "monday", b.weekStartsOn)
	require.True(t, b.fairDistribution)
}

func TestCompileIsIdempotent(t *testing.T) {
	b, err := NewBuilder(simpleCfg())
	require.NoError(t, err)
	req1, err := b.Compile()
	require.NoError(t, err)
	req2, err := b.Compile()
	require.NoError(t, err)
	require.Same(t, req1, req2)
}

func TestCompileProducesAssignmentAndShiftActiveVars(t *testing.T) {
	b, err := NewBuilder(simpleCfg())
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)
	require.True(t, b.CanSolve())

	names := make(map[string]bool, len(req.Variables))
	for _, v := range req.Variables {
		names[v.Name] = true
	}
	require.True(t, names[assignVarName("alice", "day", "2024-02-05")])
	require.True(t, names[shiftVarName("day", "2024-02-05")])
}

func TestMandatoryCoverageWithNoEligibleMembersIsInfeasible(t *testing.T) {
	cfg := simpleCfg()
	// "doctor" is declared by a pattern so the qualifier passes config
	// validation, but no member holds it.
	cfg.Patterns = append(cfg.Patterns, ShiftPattern{ID: "clinic", Start: 8 * 60, End: 16 * 60, Roles: []string{"doctor"}})
	cfg.Coverage = []CoverageSpec{
		{Start: 8 * 60, End: 16 * 60, Target: 1, Priority: PriorityMandatory, Roles: []string{"doctor"}},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	_, err = b.Compile()
	require.NoError(t, err)
	require.False(t, b.CanSolve())
	require.True(t, b.Reporter().HasErrors())
}

func TestSoftCoverageWithNoEligibleMembersStillCompiles(t *testing.T) {
	cfg := simpleCfg()
	cfg.Patterns = append(cfg.Patterns, ShiftPattern{ID: "clinic", Start: 8 * 60, End: 16 * 60, Roles: []string{"doctor"}})
	cfg.Coverage = []CoverageSpec{
		{Start: 8 * 60, End: 16 * 60, Target: 1, Priority: PriorityHigh, Roles: []string{"doctor"}},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	_, err = b.Compile()
	require.NoError(t, err)
	require.True(t, b.CanSolve())
}

func TestRuleErrorSurfacesAsCompileError(t *testing.T) {
	cfg := simpleCfg()
	cfg.Rules = []Rule{&brokenRule{}}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	_, err = b.Compile()
	require.Error(t, err)
}

type brokenRule struct{}

func (r *brokenRule) Name() string          { return "broken" }
func (r *brokenRule) Compile(b *Builder) error { return errBroken }

var errBroken = &ruleError{name: "broken", err: "always fails"}

type ruleError struct {
	name string
	err  string
}

func (e *ruleError) Error() string { return e.name + ": " + e.err }
