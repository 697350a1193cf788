package domain

import "time"

// WIB is the fixed civil timezone for every timestamp in the system.
var WIB = time.FixedZone("WIB", 7*60*60)

const (
	DateLayout     = "02-01-2006"
	DateTimeLayout = "02-01-2006 15:04:05"
)

// FormatDate renders t as dd-mm-yyyy in WIB.
func FormatDate(t time.Time) string {
	return t.In(WIB).Format(DateLayout)
}

// FormatDateTime renders t as dd-mm-yyyy HH:MM:SS in WIB.
func FormatDateTime(t time.Time) string {
	return t.In(WIB).Format(DateTimeLayout)
}

// ParseDate parses a dd-mm-yyyy string into a WIB midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, WIB)
}

// Today returns midnight of the current day in WIB.
func Today() time.Time {
	now := time.Now().In(WIB)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, WIB)
}
