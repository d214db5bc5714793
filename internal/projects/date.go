package projects

import (
	"math"
	"strings"
	"time"

	"github.com/Zachkp/portfolio-api/internal/sheet"
)

// excelEpochOffset is the serial day number of 1970-01-01 in the 1900 date system.
const excelEpochOffset = 25569

const displayLayout = "January 2006"

// maxDateMillis bounds representable dates to ±100,000,000 days from the epoch.
const maxDateMillis = 8.64e15

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006",
	time.RFC1123,
	time.RFC1123Z,
}

// SerialToTime converts a spreadsheet serial day count to a UTC time.
// Serials outside the representable range must be rejected by the caller.
func SerialToTime(serial float64) time.Time {
	return time.UnixMilli(int64(math.Round(serialMillis(serial)))).UTC()
}

func serialMillis(serial float64) float64 {
	return (serial - excelEpochOffset) * 86400 * 1000
}

// ParseDate interprets v as a calendar date. Numbers are spreadsheet serials,
// strings are tried against the accepted layouts.
func ParseDate(v sheet.Value) (time.Time, bool) {
	if n, ok := v.Num(); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(serialMillis(n)) > maxDateMillis {
			return time.Time{}, false
		}
		return SerialToTime(n), true
	}
	s, ok := v.Str()
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders v as "Month YYYY". Values that do not parse as a date
// come back as their original text; empty values render as "".
func FormatDate(v sheet.Value) string {
	if !v.Truthy() {
		return ""
	}
	t, ok := ParseDate(v)
	if !ok {
		return v.Text()
	}
	return t.Format(displayLayout)
}
