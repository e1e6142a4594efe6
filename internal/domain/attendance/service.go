package attendance

import "context"

// Service defines business logic for attendance fact mutations. All
// mutations serialize per (employee, date) cell and fan the resolved
// result out to matrix caches and subscribers.
type Service interface {
	// RecordCheckIn records a raw check-in event. Idempotent per day:
	// the earliest time wins on repeat (first in). Never overwrites a
	// manually assigned code.
	RecordCheckIn(ctx context.Context, req CheckEventRequest) (CellResponse, error)

	// RecordCheckOut records a raw check-out event. The latest time
	// wins on repeat (last out).
	RecordCheckOut(ctx context.Context, req CheckEventRequest) (CellResponse, error)

	// AssignCode assigns a catalog code to a cell after the authorizer
	// and catalog checks pass.
	AssignCode(ctx context.Context, req AssignCodeRequest) (CellResponse, error)

	// GetCell retrieves the raw cell for one (employee, date) pair.
	GetCell(ctx context.Context, employeeID string, date string) (CellResponse, error)
}
