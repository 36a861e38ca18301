package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func consecutiveCfg() Config {
	return Config{
		Members: []Member{{ID: "alice", Roles: []string{"nurse"}}},
		Patterns: []ShiftPattern{
			{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}},
		},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-11", // 7 days
	}
}

func TestMaxConsecutiveDaysMandatoryHardWindow(t *testing.T) {
	rule, err := NewRule("max-consecutive-days", map[string]any{"name": "maxrun", "threshold": 3, "priority": "mandatory"})
	require.NoError(t, err)
	cfg := consecutiveCfg()
	cfg.Rules = []Rule{rule}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	var hardWindows int
	for _, c := range req.Constraints {
		if c.Type == ConstraintLinear && c.RHS == 3 && len(c.Terms) == 4 {
			hardWindows++
		}
	}
	// 7 days, window size 4 -> 4 sliding windows
	require.Equal(t, 4, hardWindows)
}

func TestMaxConsecutiveDaysNoWindowWhenThresholdExceedsHorizon(t *testing.T) {
	rule, err := NewRule("max-consecutive-days", map[string]any{"name": "maxrun", "threshold": 30, "priority": "mandatory"})
	require.NoError(t, err)
	cfg := consecutiveCfg()
	cfg.Rules = []Rule{rule}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	_, err = b.Compile()
	require.NoError(t, err)
	require.True(t, b.CanSolve())
}

func TestMinConsecutiveDaysEmitsStreakStartVars(t *testing.T) {
	rule, err := NewRule("min-consecutive-days", map[string]any{"name": "minrun", "threshold": 2, "priority": "mandatory"})
	require.NoError(t, err)
	cfg := consecutiveCfg()
	cfg.Rules = []Rule{rule}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	found := false
	for _, v := range req.Variables {
		if v.Type == VarBool && len(v.Name) > len("streakstart:") && v.Name[:len("streakstart:")] == "streakstart:" {
			found = true
		}
	}
	require.True(t, found)
}

func TestMinConsecutiveDaysThresholdOneIsNoOp(t *testing.T) {
	rule, err := NewRule("min-consecutive-days", map[string]any{"name": "minrun", "threshold": 1, "priority": "mandatory"})
	require.NoError(t, err)
	cfg := consecutiveCfg()
	cfg.Rules = []Rule{rule}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	for _, v := range req.Variables {
		require.NotContains(t, v.Name, "streakstart:")
	}
}
