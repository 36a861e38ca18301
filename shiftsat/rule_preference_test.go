package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignmentPreferencePenalizesOthersNotTheNamedMember(t *testing.T) {
	rule, err := NewRule("assignment-preference", map[string]any{
		"name": "pref", "memberId": "alice", "patternId": "day",
	})
	require.NoError(t, err)
	cfg := Config{
		Members: []Member{
			{ID: "alice", Roles: []string{"nurse"}},
			{ID: "bob", Roles: []string{"nurse"}},
		},
		Patterns:    []ShiftPattern{{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}}},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-05",
		Rules:       []Rule{rule},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	aliceVar := assignVarName("alice", "day", "2024-02-05")
	bobVar := assignVarName("bob", "day", "2024-02-05")
	penalized := make(map[string]bool)
	for _, term := range req.Objective.Terms {
		if term.Coeff == PenaltyAssignmentPreference {
			penalized[term.Var] = true
		}
	}
	require.True(t, penalized[bobVar])
	require.False(t, penalized[aliceVar])
}

func TestAssignmentPreferenceUnknownPatternIsRuleError(t *testing.T) {
	rule, err := NewRule("assignment-preference", map[string]any{
		"name": "pref", "memberId": "alice", "patternId": "ghost",
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

func TestLocationPreferencePenalizesNonPreferredLocation(t *testing.T) {
	rule, err := NewRule("location-preference", map[string]any{
		"name": "loc", "location": "clinic-a",
	})
	require.NoError(t, err)
	cfg := Config{
		Members: []Member{{ID: "alice", Roles: []string{"nurse"}}},
		Patterns: []ShiftPattern{
			{ID: "a", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}, Location: "clinic-a"},
			{ID: "b", Start: 8 * 60, End: 16 * 60, Roles: []string{"nurse"}, Location: "clinic-b"},
		},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-05",
		Rules:       []Rule{rule},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	aVar := assignVarName("alice", "a", "2024-02-05")
	bVar := assignVarName("alice", "b", "2024-02-05")
	penalized := make(map[string]bool)
	for _, term := range req.Objective.Terms {
		if term.Coeff == PenaltyAssignmentPreference {
			penalized[term.Var] = true
		}
	}
	require.False(t, penalized[aVar])
	require.True(t, penalized[bVar])
}
