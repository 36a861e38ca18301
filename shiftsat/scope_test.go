package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleUniverse() []Member {
	return []Member{
		{ID: "alice", Roles: []string{"staff"}, Skills: []string{"first-aid"}},
		{ID: "bob", Roles: []string{"staff", "lead"}},
		{ID: "carol", Roles: []string{"lead"}, Skills: []string{"first-aid", "forklift"}},
	}
}

func TestResolveMembersByRole(t *testing.T) {
	got, err := resolveMembers(EntityScope{Roles: []string{"lead"}}, sampleUniverse())
	require.NoError(t, err)
	require.Equal(t, []string{"bob", "carol"}, sortedMemberIDs(got))
}

func TestResolveMembersBySkillSuperset(t *testing.T) {
	got, err := resolveMembers(EntityScope{Skills: []string{"first-aid", "forklift"}}, sampleUniverse())
	require.NoError(t, err)
	require.Equal(t, []string{"carol"}, sortedMemberIDs(got))
}

func TestResolveMembersNoneReturnsUniverse(t *testing.T) {
	got, err := resolveMembers(EntityScope{}, sampleUniverse())
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestResolveMembersRejectsMultipleVariants(t *testing.T) {
	_, err := resolveMembers(EntityScope{Members: []string{"alice"}, Roles: []string{"lead"}}, sampleUniverse())
	require.Error(t, err)
}

func TestResolveActiveDaysDayOfWeek(t *testing.T) {
	days, err := buildHorizon("2024-02-05", "2024-02-11")
	require.NoError(t, err)
	got, err := resolveActiveDays(TimeScope{DayOfWeek: []string{"monday", "tuesday"}}, days)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2024-02-05", got[0].ISO)
	require.Equal(t, "2024-02-06", got[1].ISO)
}

func TestResolveActiveDaysRecurringPeriodWraps(t *testing.T) {
	days, err := buildHorizon("2023-12-28", "2024-01-03")
	require.NoError(t, err)
	// Dec 26 - Jan 2 holiday period, wraps the year boundary.
	got, err := resolveActiveDays(TimeScope{RecurringPeriods: []RecurringPeriod{
		{Name: "holiday", StartMonth: 12, StartDay: 26, EndMonth: 1, EndDay: 2},
	}}, days)
	require.NoError(t, err)
	gotISO := make([]string, len(got))
	for i, d := range got {
		gotISO[i] = d.ISO
	}
	require.Equal(t, []string{"2023-12-28", "2023-12-29", "2023-12-30", "2023-12-31", "2024-01-01", "2024-01-02"}, gotISO)
}

func TestResolveActiveDaysEmptyScopeReturnsAll(t *testing.T) {
	days, err := buildHorizon("2024-02-05", "2024-02-06")
	require.NoError(t, err)
	got, err := resolveActiveDays(TimeScope{}, days)
	require.NoError(t, err)
	require.Equal(t, days, got)
}
