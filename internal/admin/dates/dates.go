package dates

import "time"

const isoDateLayout = "2006-01-02"

// StartOfWeek returns the Monday at 00:00:00 (in t's location) of the
// week containing t. Weeks start on Monday, so a Sunday maps to the
// Monday six days earlier.
func StartOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays returns t offset by n calendar days. n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ToISODate formats t as YYYY-MM-DD using its local date components.
func ToISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// Week is a Monday-start week: Start inclusive, End exclusive, and the
// seven days in between in order.
type Week struct {
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
	Days  []time.Time `json:"days"`
}

// BuildWeek builds the week containing t.
func BuildWeek(t time.Time) Week {
	start := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return Week{Start: start, End: AddDays(start, 7), Days: days}
}
