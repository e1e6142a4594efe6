package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
)

// CodeRepository is an in-memory code.Repository.
type CodeRepository struct {
	mu    sync.RWMutex
	codes map[string]code.AttendanceCode
}

func NewCodeRepository(seed ...code.AttendanceCode) *CodeRepository {
	r := &CodeRepository{codes: make(map[string]code.AttendanceCode, len(seed))}
	for _, c := range seed {
		r.codes[c.Symbol] = c
	}
	return r
}

// List implements code.Repository.
func (r *CodeRepository) List(_ context.Context) ([]code.AttendanceCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]code.AttendanceCode, 0, len(r.codes))
	for _, c := range r.codes {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Symbol < codes[j].Symbol })

	return codes, nil
}

// GetBySymbol implements code.Repository.
func (r *CodeRepository) GetBySymbol(_ context.Context, symbol string) (code.AttendanceCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codes[symbol]
	if !ok {
		return code.AttendanceCode{}, code.ErrCodeNotFound
	}
	return c, nil
}

// Upsert implements code.Repository.
func (r *CodeRepository) Upsert(_ context.Context, c code.AttendanceCode) (code.AttendanceCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.codes[c.Symbol]; ok {
		c.CreatedAt = existing.CreatedAt
	}
	r.codes[c.Symbol] = c
	return c, nil
}

// Delete implements code.Repository.
func (r *CodeRepository) Delete(_ context.Context, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[symbol]; !ok {
		return code.ErrCodeNotFound
	}
	delete(r.codes, symbol)
	return nil
}

// Count implements code.Repository.
func (r *CodeRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.codes)), nil
}
