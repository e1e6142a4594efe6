package attendance

import "errors"

// Attendance fact store domain errors
var (
	ErrUnknownCode  = errors.New("assigned code does not exist in the catalog")
	ErrForbidden    = errors.New("editor is not allowed to assign codes for this employee")
	ErrCellNotFound = errors.New("attendance cell not found")
)
