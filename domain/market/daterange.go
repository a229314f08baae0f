package market

import (
	"time"

	"github.com/JoseExp44/StockWebApp/internal/errors"
)

// DateFormat is the wire layout for range boundaries ("YYYY-MM-DD"),
// matching the HTML date input value format.
const DateFormat = "2006-01-02"

// DateRange is an inclusive [Start, End] day window
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses and validates a start/end pair. It fails with an
// INVALID_INPUT error when either boundary does not parse and with an
// INVALID_RANGE error when start falls after end.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateRange{}, errors.InvalidInput("start date must be YYYY-MM-DD")
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateRange{}, errors.InvalidInput("end date must be YYYY-MM-DD")
	}
	if s.After(e) {
		return DateRange{}, errors.InvalidRange("start date must not be after end date")
	}
	return DateRange{Start: s, End: e}, nil
}

// Contains reports whether the given day falls inside the range,
// boundaries included.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// FilterQuotes returns the quotes whose date falls within the range.
// Input order is preserved.
func FilterQuotes(quotes []Quote, r DateRange) []Quote {
	filtered := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if r.Contains(q.Date) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// DefaultWindow picks the initial chart window from the union of all
// cached quote dates: the latest 30 days ending at the newest date, the
// start clamped to the oldest date. Returns false when no dates exist.
func DefaultWindow(dates []time.Time) (DateRange, bool) {
	if len(dates) == 0 {
		return DateRange{}, false
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	start := max.AddDate(0, 0, -30)
	if start.Before(min) {
		start = min
	}
	return DateRange{Start: start, End: max}, true
}
