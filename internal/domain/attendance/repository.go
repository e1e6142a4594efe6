package attendance

import (
	"context"
	"time"
)

// CellRepository defines data access for attendance cells.
type CellRepository interface {
	// GetByEmployeeAndDate returns the live cell for the pair, or nil
	// when no cell exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Cell, error)

	// Upsert replaces the live cell for (EmployeeID, Date) as a whole.
	// Replacement is atomic so readers never observe a torn cell.
	Upsert(ctx context.Context, cell Cell) (Cell, error)

	// ListByDateRange returns every cell of the given employees with
	// from <= date <= to.
	ListByDateRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Cell, error)

	// CountBySymbol counts live cells referencing an assigned symbol.
	// Backs the catalog's referential-integrity check on delete.
	CountBySymbol(ctx context.Context, symbol string) (int64, error)
}

// Authorizer gates manual code assignment.
type Authorizer interface {
	CanAssignCode(ctx context.Context, editorID string, employeeID string) (bool, error)
}
