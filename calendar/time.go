package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/foxcpp/timetable_ics/ttparser"
)

const dateTimeFormat = ttparser.DateFormat + " 15:04"

// FormatError is returned when session time or date can not be parsed.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %q: %s", e.Value, e.Reason)
}

// Zone returns fixed zone for UTC offset in hours, DST is not applied.
func Zone(offset int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*60*60)
}

// ParseTimeRange converts "HH.MM-HH.MM" on date "DD.MM.YYYY" into
// absolute start and end in the fixed zone.
func ParseTimeRange(timeRange, date string, offset int) (start, end time.Time, err error) {
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, &FormatError{timeRange, "expected HH.MM-HH.MM"}
	}
	halves := [2]string{}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return time.Time{}, time.Time{}, &FormatError{timeRange, "expected HH.MM-HH.MM"}
		}
		halves[i] = strings.Replace(p, ".", ":", 1)
	}

	loc := Zone(offset)
	date = strings.TrimSpace(date)
	start, err = time.ParseInLocation(dateTimeFormat, date+" "+halves[0], loc)
	if err != nil {
		return time.Time{}, time.Time{}, &FormatError{date + " " + timeRange, err.Error()}
	}
	end, err = time.ParseInLocation(dateTimeFormat, date+" "+halves[1], loc)
	if err != nil {
		return time.Time{}, time.Time{}, &FormatError{date + " " + timeRange, err.Error()}
	}
	return start, end, nil
}
