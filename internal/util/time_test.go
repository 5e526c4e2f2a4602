package util

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)
	require.Equal(t, "2024-03-10", DateKey(ts, time.UTC))
	require.Equal(t, "2024-03-11", DateKey(ts, time.FixedZone("UTC+3", 3*60*60)))
}

func TestParseDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day, err := ParseDateKey("2024-03-11", loc)
	require.NoError(t, err)
	require.True(t, day.Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, loc)))

	_, err = ParseDateKey("11.03.2024", loc)
	require.Error(t, err)
}

func TestTruncateToDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 22, 30, 15, 10, time.UTC)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), TruncateToDay(ts))
}

func TestStartOfDayDaylightSavingGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	start := StartOfDay(2024, 9, 8, loc)
	require.Equal(t, "2024-09-08 01:00", start.In(loc).Format("2006-01-02 15:04"))

	day, err := ParseDateKey("2024-09-08", loc)
	require.NoError(t, err)
	require.True(t, day.Equal(start))

	require.True(t, StartOfDay(2024, 9, 9, loc).Equal(time.Date(2024, 9, 9, 0, 0, 0, 0, loc)))
	require.Equal(t, "2024-09-30", StartOfDay(2024, 10, 0, loc).Format(DateLayout))
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC), CalendarDay(ts, loc))
}
