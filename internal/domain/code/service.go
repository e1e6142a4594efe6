package code

import "context"

// Service defines business logic for catalog management.
type Service interface {
	// ListCodes returns the full catalog.
	ListCodes(ctx context.Context) ([]AttendanceCode, error)

	// GetCode retrieves one code by symbol.
	GetCode(ctx context.Context, symbol string) (AttendanceCode, error)

	// UpsertCode creates or replaces a catalog entry (admin only).
	UpsertCode(ctx context.Context, req UpsertCodeRequest) (AttendanceCode, error)

	// DeleteCode removes a code. Fails with ErrCodeInUse while any
	// cell still references the symbol, so deletion can never leave a
	// dangling reference.
	DeleteCode(ctx context.Context, symbol string) error
}
