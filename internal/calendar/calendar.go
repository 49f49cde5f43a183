// Package calendar provides business-day arithmetic over local calendar
// dates. Functions are pure: the reference "today" is always passed in,
// never read from a wall clock.
package calendar

import "time"

// DateLayout is the only date format accepted or produced at the edges.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Truncate drops the time-of-day component, normalizing to UTC so that
// dates from different locations compare at calendar-day granularity.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddBusinessDays advances start one calendar day at a time, counting a
// day as added only when it is not a Saturday or Sunday, until n business
// days have been added. n = 0 returns the start day itself; time-of-day
// is discarded.
func AddBusinessDays(start time.Time, n int) time.Time {
	date := Truncate(start)
	added := 0
	for added < n {
		date = date.AddDate(0, 0, 1)
		if !isWeekend(date) {
			added++
		}
	}
	return date
}

// BusinessDaysBetween counts weekdays in the inclusive range [start, end]
// at calendar-day granularity, minus one, so a case escalated today reads
// zero days old. Returns 0 when start does not parse or end precedes
// start. This is the single source of case age; downstream severity
// thresholds are calibrated to the minus-one policy.
func BusinessDaysBetween(start string, end time.Time) int {
	startDate, err := ParseDate(start)
	if err != nil {
		return 0
	}
	endDate := Truncate(end)
	if endDate.Before(startDate) {
		return 0
	}

	count := 0
	for cur := startDate; !cur.After(endDate); cur = cur.AddDate(0, 0, 1) {
		if !isWeekend(cur) {
			count++
		}
	}
	if count < 1 {
		return 0
	}
	return count - 1
}
