package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeekWindowsAlignedHorizon(t *testing.T) {
	days, err := buildHorizon("2024-02-05", "2024-02-18") // two full Mon-Sun weeks
	require.NoError(t, err)
	windows := weekWindows(days, "monday")
	require.Len(t, windows, 2)
	require.Len(t, windows[0], 7)
	require.Len(t, windows[1], 7)
	require.Equal(t, "2024-02-05", windows[0][0].ISO)
	require.Equal(t, "2024-02-12", windows[1][0].ISO)
}

func TestWeekWindowsPartialFirstAndLast(t *testing.T) {
	days, err := buildHorizon("2024-02-07", "2024-02-13") // Wed start, Tue end
	require.NoError(t, err)
	windows := weekWindows(days, "monday")
	require.Len(t, windows, 2)
	require.Equal(t, "2024-02-07", windows[0][0].ISO)
	require.Equal(t, "2024-02-12", windows[1][0].ISO)
	require.Equal(t, "2024-02-13", windows[1][len(windows[1])-1].ISO)
}

func TestWeekWindowsEmptyHorizon(t *testing.T) {
	require.Nil(t, weekWindows(nil, "monday"))
}
