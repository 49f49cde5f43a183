package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		// 2024-01-01 is a Monday; Jan 6-7 is the first weekend.
		{"seven from monday skips weekend", date(2024, time.January, 1), 7, date(2024, time.January, 10)},
		{"one from friday lands monday", date(2024, time.January, 5), 1, date(2024, time.January, 8)},
		{"one from saturday lands monday", date(2024, time.January, 6), 1, date(2024, time.January, 8)},
		{"zero returns start", date(2024, time.January, 6), 0, date(2024, time.January, 6)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddBusinessDays(tc.start, tc.n))
		})
	}
}

func TestAddBusinessDaysDropsTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 1, 17, 45, 3, 0, time.UTC)
	assert.Equal(t, date(2024, time.January, 10), AddBusinessDays(start, 7))
}

// For any start and n >= 1 the result is a weekday and the number of
// weekdays strictly after start up to and including the result equals n.
func TestAddBusinessDaysProperties(t *testing.T) {
	for day := 1; day <= 14; day++ {
		start := date(2024, time.January, day)
		for n := 1; n <= 10; n++ {
			result := AddBusinessDays(start, n)

			wd := result.Weekday()
			require.NotEqual(t, time.Saturday, wd, "start=%s n=%d", start, n)
			require.NotEqual(t, time.Sunday, wd, "start=%s n=%d", start, n)

			count := 0
			for cur := start.AddDate(0, 0, 1); !cur.After(result); cur = cur.AddDate(0, 0, 1) {
				if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
					count++
				}
			}
			require.Equal(t, n, count, "start=%s n=%d", start, n)
		}
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   time.Time
		want  int
	}{
		{"same weekday", "2024-01-03", date(2024, time.January, 3), 0},
		{"same saturday", "2024-01-06", date(2024, time.January, 6), 0},
		{"end before start", "2024-01-10", date(2024, time.January, 3), 0},
		{"unparseable start", "not-a-date", date(2024, time.January, 3), 0},
		{"empty start", "", date(2024, time.January, 3), 0},
		{"impossible date", "2024-13-40", date(2024, time.January, 3), 0},
		{"monday to friday", "2024-01-01", date(2024, time.January, 5), 4},
		{"monday to next monday", "2024-01-01", date(2024, time.January, 8), 5},
		{"friday to monday", "2024-01-05", date(2024, time.January, 8), 1},
		{"monday to second thursday", "2024-01-01", date(2024, time.January, 11), 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BusinessDaysBetween(tc.start, tc.end))
		})
	}
}

func TestBusinessDaysBetweenTruncatesEnd(t *testing.T) {
	end := time.Date(2024, time.January, 3, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 0, BusinessDaysBetween("2024-01-03", end))
}

func TestParseFormatRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(parsed))

	_, err = ParseDate("2024-2-9")
	assert.Error(t, err)
}
