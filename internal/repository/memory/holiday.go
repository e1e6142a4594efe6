package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
)

// HolidayRepository is an in-memory calendar.HolidayRepository seeded
// with fixed dates.
type HolidayRepository struct {
	mu    sync.RWMutex
	dates map[string]struct{}
}

// NewHolidayRepository builds a repository from "YYYY-MM-DD" dates.
func NewHolidayRepository(dates ...string) (*HolidayRepository, error) {
	r := &HolidayRepository{dates: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
		r.dates[d] = struct{}{}
	}
	return r, nil
}

// HolidaysForYear implements calendar.HolidayRepository.
func (r *HolidayRepository) HolidaysForYear(_ context.Context, year int) (calendar.HolidaySet, error) {
	prefix := fmt.Sprintf("%04d-", year)

	r.mu.RLock()
	defer r.mu.RUnlock()

	holidays := make(calendar.HolidaySet)
	for d := range r.dates {
		if len(d) >= len(prefix) && d[:len(prefix)] == prefix {
			holidays[d] = struct{}{}
		}
	}

	return holidays, nil
}

// Add registers one more holiday date.
func (r *HolidayRepository) Add(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid holiday date %q: %w", date, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates[date] = struct{}{}
	return nil
}
