package matrix

import (
	"context"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
)

// Service builds and maintains monthly matrices.
type Service interface {
	// GetMonthlyMatrix returns the cached or freshly built matrix for
	// a department and "YYYY-MM" month. When the context deadline
	// expires mid-build the rows computed so far are returned with
	// Incomplete set instead of failing the request.
	GetMonthlyMatrix(ctx context.Context, departmentID string, yearMonth string) (MonthlyMatrix, error)

	// ResolveCell resolves one cell against the current catalog and
	// calendar. cell may be nil (no data recorded yet).
	ResolveCell(ctx context.Context, employeeID string, date time.Time, cell *attendance.Cell) (ResolvedCell, error)

	// ApplyCellChange patches the cached matrix covering the change,
	// updating only the affected row and column totals. Stale changes
	// (older than the cached cell) are ignored.
	ApplyCellChange(departmentID string, change CellChange)

	// Invalidate drops the cached matrix for a department and month.
	Invalidate(departmentID string, yearMonth string)
}

// Notifier broadcasts cell changes to matrix viewers.
type Notifier interface {
	PublishCellChange(departmentID string, yearMonth string, change CellChange)
}
