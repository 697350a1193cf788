package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDate_RendersWIB(t *testing.T) {
	// 30 Aug 2026 18:30 UTC is already 31 Aug 01:30 in Jakarta.
	utc := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
	require.Equal(t, "31-08-2026", FormatDate(utc))
	require.Equal(t, "31-08-2026 01:30:00", FormatDateTime(utc))
}

func TestParseDate_RoundTrip(t *testing.T) {
	parsed, err := ParseDate("05-01-2026")
	require.NoError(t, err)
	require.Equal(t, 2026, parsed.Year())
	require.Equal(t, time.January, parsed.Month())
	require.Equal(t, 5, parsed.Day())
	require.Equal(t, WIB.String(), parsed.Location().String())
	require.Equal(t, "05-01-2026", FormatDate(parsed))
}

func TestParseDate_RejectsISO(t *testing.T) {
	_, err := ParseDate("2026-01-05")
	require.Error(t, err)
}

func TestToday_IsMidnightWIB(t *testing.T) {
	today := Today()
	require.Zero(t, today.Hour())
	require.Zero(t, today.Minute())
	require.Zero(t, today.Second())
	_, offset := today.Zone()
	require.Equal(t, 7*60*60, offset)
}
