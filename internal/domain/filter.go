package domain

// DateFilterType selects between an exact-day and a calendar-month match on
// service_date.
type DateFilterType string

const (
	DateFilterDay   DateFilterType = "day"
	DateFilterMonth DateFilterType = "month"
)

// BookingFilter is a conjunction of optional predicates. Zero value means
// no constraint. When a month filter is active it takes precedence over a
// day filter.
type BookingFilter struct {
	DateFilterType DateFilterType
	Date           string // YYYY-MM-DD
	Month          string // YYYY-MM
	Agency         string // substring, case-insensitive
	Provider       string // substring, case-insensitive
	Vehicle        string // exact vehicle_type match
}

// MonthActive reports whether the month predicate wins.
func (f BookingFilter) MonthActive() bool {
	return f.DateFilterType == DateFilterMonth && f.Month != ""
}
