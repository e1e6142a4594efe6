package calendar

import (
	"fmt"
	"time"
)

// Day is one calendar day of a month view. Derived per query, never
// persisted. Date is a date-only value pinned to UTC midnight.
type Day struct {
	Date      time.Time    `json:"date"`
	Weekday   time.Weekday `json:"weekday"`
	IsWeekend bool         `json:"is_weekend"`
	IsHoliday bool         `json:"is_holiday"`
}

// HolidaySet holds the holiday dates of one or more years, keyed by
// the "YYYY-MM-DD" date string so lookups never drift across zones.
type HolidaySet map[string]struct{}

func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[DateKey(d)] = struct{}{}
	}
	return set
}

func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[DateKey(date)]
	return ok
}

// DateOnly normalizes a timestamp to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats a date-only value as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// YearMonthKey formats a date as "YYYY-MM".
func YearMonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Month generates the ordered, gap-free day list for a month. Months
// are 1-indexed (time.Month). Weekend days are configurable because
// not every organization runs Saturday+Sunday weekends. A day can be
// both weekend and holiday; resolution precedence decides which wins.
func Month(year int, month time.Month, weekend []time.Weekday, holidays HolidaySet) ([]Day, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month out of range: %d", month)
	}
	if year < 1900 || year > 2200 {
		return nil, fmt.Errorf("year out of range: %d", year)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	weekendSet := make(map[time.Weekday]struct{}, len(weekend))
	for _, w := range weekend {
		weekendSet[w] = struct{}{}
	}

	days := make([]Day, 0, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		date := first.AddDate(0, 0, i)
		_, isWeekend := weekendSet[date.Weekday()]
		days = append(days, Day{
			Date:      date,
			Weekday:   date.Weekday(),
			IsWeekend: isWeekend,
			IsHoliday: holidays.Contains(date),
		})
	}
	return days, nil
}
