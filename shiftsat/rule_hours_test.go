package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func hoursCfg(priority string) Config {
	return Config{
		Members: []Member{{ID: "alice", Roles: []string{"nurse"}}},
		Patterns: []ShiftPattern{
			{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}},
		},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-11",
	}
}

func TestMaxHoursDayMandatoryAddsHardConstraint(t *testing.T) {
	rule, err := NewRule("max-hours-day", map[string]any{"name": "cap", "threshold": 8 * 60, "priority": "mandatory"})
	require.NoError(t, err)
	cfg := hoursCfg("mandatory")
	cfg.Rules = []Rule{rule}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)
	require.True(t, b.CanSolve())

	var hard int
	for _, c := range req.Constraints {
		if c.Type == ConstraintLinear && c.RHS == 8*60 {
			hard++
		}
	}
	require.Equal(t, 7, hard) // one per horizon day
}

func TestMaxHoursWeekSoftTracksConstraint(t *testing.T) {
	rule, err := NewRule("max-hours-week", map[string]any{"name": "weekcap", "threshold": 40 * 60, "priority": "high"})
	require.NoError(t, err)
	cfg := hoursCfg("high")
	cfg.Rules = []Rule{rule}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	var soft bool
	for _, c := range req.Constraints {
		if c.Type == ConstraintSoftLinear && c.RHS == 40*60 {
			soft = true
		}
	}
	require.True(t, soft)
}

func TestMaxHoursRuleMissingPriorityDefaultsToMedium(t *testing.T) {
	rule, err := NewRule("max-hours-day", map[string]any{"name": "cap", "threshold": 8 * 60})
	require.NoError(t, err)
	hr := rule.(*hoursRule)
	require.Equal(t, PriorityMedium, hr.priority)
}
