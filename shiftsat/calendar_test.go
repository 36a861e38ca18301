package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEndMinutes(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"same-day shift", 8 * 60, 17 * 60, 17 * 60},
		{"overnight shift", 22 * 60, 6 * 60, 6*60 + MinutesPerDay},
		{"end equal to start wraps a full day", 20 * 60, 20 * 60, 20*60 + MinutesPerDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeEndMinutes(tt.start, tt.end)
			require.Equal(t, tt.want, got)
			require.Less(t, got, 2*MinutesPerDay)
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	require.True(t, rangesOverlap(0, 10, 5, 15))
	require.False(t, rangesOverlap(0, 10, 10, 20))
	require.False(t, rangesOverlap(0, 10, 11, 20))
	require.True(t, rangesOverlap(5, 10, 0, 20))
}

func TestToDayOfWeekUTC(t *testing.T) {
	d, err := parseDayString("2024-02-05")
	require.NoError(t, err)
	require.Equal(t, "monday", toDayOfWeekUTC(d))
}

func TestBuildHorizon(t *testing.T) {
	days, err := buildHorizon("2024-02-05", "2024-02-11")
	require.NoError(t, err)
	require.Len(t, days, 7)
	require.Equal(t, "2024-02-05", days[0].ISO)
	require.Equal(t, 0, days[0].Index)
	require.Equal(t, "2024-02-11", days[6].ISO)
	require.Equal(t, 6, days[6].Index)
}

func TestBuildHorizonRejectsInverted(t *testing.T) {
	_, err := buildHorizon("2024-02-11", "2024-02-05")
	require.Error(t, err)
}
