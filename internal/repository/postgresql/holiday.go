package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepository{db: db}
}

// HolidaysForYear implements calendar.HolidayRepository.
func (r *holidayRepository) HolidaysForYear(ctx context.Context, year int) (calendar.HolidaySet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date
		FROM public_holidays
		WHERE date >= $1
		  AND date < $2
	`

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make(calendar.HolidaySet)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays[calendar.DateKey(date)] = struct{}{}
	}

	return holidays, nil
}
