package code

import "context"

// Repository defines data access for the attendance code catalog.
type Repository interface {
	// List returns the full catalog ordered by symbol.
	List(ctx context.Context) ([]AttendanceCode, error)

	// GetBySymbol retrieves one code; ErrCodeNotFound when absent.
	GetBySymbol(ctx context.Context, symbol string) (AttendanceCode, error)

	// Upsert creates or replaces the code with the same symbol.
	Upsert(ctx context.Context, c AttendanceCode) (AttendanceCode, error)

	// Delete removes a code; ErrCodeNotFound when absent. Referential
	// integrity against cells is the service's responsibility.
	Delete(ctx context.Context, symbol string) error

	// Count returns the catalog size. Used to decide whether the
	// default catalog should be seeded.
	Count(ctx context.Context) (int64, error)
}
