package response

import (
	"errors"
	"net/http"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/auth"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Catalog domain errors
	case errors.Is(err, code.ErrCodeNotFound):
		NotFound(w, "Attendance code not found")
	case errors.Is(err, code.ErrCodeInUse):
		Conflict(w, "Attendance code is still referenced by cells")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrUnknownCode):
		BadRequest(w, "Unknown attendance code", nil)
	case errors.Is(err, attendance.ErrForbidden):
		Forbidden(w, "Not allowed to edit this employee's attendance")
	case errors.Is(err, attendance.ErrCellNotFound):
		NotFound(w, "Attendance cell not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Matrix domain errors
	case errors.Is(err, matrix.ErrDepartmentRequired):
		BadRequest(w, "department query parameter is required", nil)
	case errors.Is(err, matrix.ErrInvalidYearMonth):
		BadRequest(w, "month must be YYYY-MM", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
