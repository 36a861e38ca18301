package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShiftPatternNormalizedEndSameDay(t *testing.T) {
	p := ShiftPattern{Start: 8 * 60, End: 16 * 60}
	require.Equal(t, 16*60, p.NormalizedEnd())
	require.Equal(t, 8*60, p.DurationMinutes())
}

func TestShiftPatternNormalizedEndOvernight(t *testing.T) {
	p := ShiftPattern{Start: 22 * 60, End: 6 * 60}
	require.Equal(t, 6*60+MinutesPerDay, p.NormalizedEnd())
	require.Equal(t, 8*60, p.DurationMinutes())
}

func TestCoverageRequirementQualifierFlags(t *testing.T) {
	withRoles := CoverageRequirement{Roles: []string{"nurse"}}
	require.True(t, withRoles.HasRoles())
	require.False(t, withRoles.HasSkills())

	withSkills := CoverageRequirement{Skills: []string{"cpr"}}
	require.False(t, withSkills.HasRoles())
	require.True(t, withSkills.HasSkills())
}

func TestQualifierKeyForIsOrderIndependent(t *testing.T) {
	a := qualifierKeyFor([]string{"nurse", "doctor"}, []string{"cpr"})
	b := qualifierKeyFor([]string{"doctor", "nurse"}, []string{"cpr"})
	require.Equal(t, a, b)
}

func TestQualifierKeyForEmptyUsesPlaceholder(t *testing.T) {
	got := qualifierKeyFor(nil, nil)
	require.Equal(t, "_/_", got)
}
