package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeOffHardZeroesOverlappingAssignment(t *testing.T) {
	rule, err := NewRule("time-off", map[string]any{
		"name": "off", "memberId": "alice", "day": "2024-02-05",
		"start": 9 * 60, "end": 12 * 60, "hard": true,
	})
	require.NoError(t, err)
	cfg := Config{
		Members:     []Member{{ID: "alice", Roles: []string{"nurse"}}},
		Patterns:    []ShiftPattern{{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}}},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-05",
		Rules:       []Rule{rule},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	want := assignVarName("alice", "day", "2024-02-05")
	found := false
	for _, c := range req.Constraints {
		if c.Type == ConstraintLinear && c.RHS == 0 && len(c.Terms) == 1 && c.Terms[0].Var == want {
			found = true
		}
	}
	require.True(t, found)
}

func TestTimeOffOvernightExcludesFollowingDay(t *testing.T) {
	rule, err := NewRule("time-off", map[string]any{
		"name": "off", "memberId": "alice", "day": "2024-02-05",
		"start": 22 * 60, "end": 2 * 60, "hard": true,
	})
	require.NoError(t, err)
	cfg := Config{
		Members:     []Member{{ID: "alice", Roles: []string{"nurse"}}},
		Patterns:    []ShiftPattern{{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}}},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-06",
		Rules:       []Rule{rule},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	_, err = b.Compile()
	require.NoError(t, err)
	require.True(t, b.Reporter().Excludes("alice", "2024-02-06", 0, 60))
}

func TestTimeOffUnknownDayIsRuleError(t *testing.T) {
	rule, err := NewRule("time-off", map[string]any{
		"name": "off", "memberId": "alice", "day": "2099-01-01",
		"start": 9 * 60, "end": 12 * 60,
	})
	require.NoError(t, err)
	cfg := Config{
		Members:     []Member{{ID: "alice", Roles: []string{"nurse"}}},
		Patterns:    []ShiftPattern{{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}}},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-05",
		Rules:       []Rule{rule},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	_, err = b.Compile()
	require.Error(t, err)
}
