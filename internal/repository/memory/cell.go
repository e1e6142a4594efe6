package memory

import (
	"context"
	"sync"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
)

// CellRepository is an in-memory attendance.CellRepository. It backs
// the memory store driver and the service tests.
type CellRepository struct {
	mu    sync.RWMutex
	cells map[string]attendance.Cell // employeeID|date -> cell
}

func NewCellRepository() *CellRepository {
	return &CellRepository{cells: make(map[string]attendance.Cell)}
}

func cellKey(employeeID string, date time.Time) string {
	return employeeID + "|" + calendar.DateKey(date)
}

// GetByEmployeeAndDate implements attendance.CellRepository.
func (r *CellRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Cell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cell, ok := r.cells[cellKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	clone := cell.Clone()
	return &clone, nil
}

// Upsert implements attendance.CellRepository.
func (r *CellRepository) Upsert(_ context.Context, cell attendance.Cell) (attendance.Cell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cellKey(cell.EmployeeID, cell.Date)
	if existing, ok := r.cells[key]; ok {
		cell.ID = existing.ID
	}
	r.cells[key] = cell.Clone()
	return cell, nil
}

// ListByDateRange implements attendance.CellRepository.
func (r *CellRepository) ListByDateRange(_ context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Cell, error) {
	wanted := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var cells []attendance.Cell
	for _, cell := range r.cells {
		if _, ok := wanted[cell.EmployeeID]; !ok {
			continue
		}
		if cell.Date.Before(from) || cell.Date.After(to) {
			continue
		}
		cells = append(cells, cell.Clone())
	}

	return cells, nil
}

// CountBySymbol implements attendance.CellRepository.
func (r *CellRepository) CountBySymbol(_ context.Context, symbol string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, cell := range r.cells {
		if cell.AssignedSymbol != nil && *cell.AssignedSymbol == symbol {
			count++
		}
	}

	return count, nil
}
