package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignTogetherLinksBothDirections(t *testing.T) {
	rule, err := NewRule("assign-together", map[string]any{
		"name": "pair", "memberA": "alice", "memberB": "bob",
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

	av := assignVarName("alice", "day", "2024-02-05")
	bv := assignVarName("bob", "day", "2024-02-05")
	var forward, backward bool
	for _, c := range req.Constraints {
		if c.Type != ConstraintImplication {
			continue
		}
		if c.If == av && c.Then == bv {
			forward = true
		}
		if c.If == bv && c.Then == av {
			backward = true
		}
	}
	require.True(t, forward)
	require.True(t, backward)
}

func TestAssignTogetherUnknownMemberIsRuleError(t *testing.T) {
	rule, err := NewRule("assign-together", map[string]any{
		"name": "pair", "memberA": "alice", "memberB": "ghost",
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
