package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
)

// EditorAuthorizer decides who may write attendance codes: admins for
// any employee, department managers for employees of their department.
type EditorAuthorizer struct {
	users     user.Repository
	employees employee.Repository
}

func NewEditorAuthorizer(users user.Repository, employees employee.Repository) attendance.Authorizer {
	return &EditorAuthorizer{users: users, employees: employees}
}

// CanAssignCode implements attendance.Authorizer.
func (a *EditorAuthorizer) CanAssignCode(ctx context.Context, editorID string, employeeID string) (bool, error) {
	u, err := a.users.GetByID(ctx, editorID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up editor: %w", err)
	}

	if u.IsAdmin {
		return true, nil
	}
	if u.DepartmentID == nil {
		return false, nil
	}

	e, err := a.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up employee: %w", err)
	}

	return e.DepartmentID == *u.DepartmentID, nil
}
