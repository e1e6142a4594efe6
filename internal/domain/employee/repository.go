package employee

import "context"

// Repository is the employee directory contract consumed by the
// aggregator to enumerate matrix rows.
type Repository interface {
	// ListByDepartment returns the employees of a department ordered
	// by full name.
	ListByDepartment(ctx context.Context, departmentID string) ([]Employee, error)

	// GetByID retrieves a single employee
	GetByID(ctx context.Context, id string) (Employee, error)
}
