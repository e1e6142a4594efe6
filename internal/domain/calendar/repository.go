package calendar

import "context"

// HolidayRepository supplies the organization's public holiday dates.
type HolidayRepository interface {
	// HolidaysForYear returns every holiday date of the given year.
	HolidaysForYear(ctx context.Context, year int) (HolidaySet, error)
}
