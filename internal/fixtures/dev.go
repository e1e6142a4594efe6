package fixtures

import (
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
)

// DevDepartmentID is the department the demo employees belong to.
const DevDepartmentID = "dept-ops"

func strPtr(s string) *string { return &s }

// DevEmployees is a small directory for running the memory store driver
// without a database.
func DevEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: "emp-001", FullName: "Amina Benali", DepartmentID: DevDepartmentID, Position: strPtr("Operator")},
		{ID: "emp-002", FullName: "Karim Haddad", DepartmentID: DevDepartmentID, Position: strPtr("Operator")},
		{ID: "emp-003", FullName: "Lina Mansouri", DepartmentID: DevDepartmentID, Position: strPtr("Team lead")},
	}
}

// DevAdminUser builds the demo admin account. The password hash is
// computed at startup so no credential material lives in the source.
func DevAdminUser(passwordHash string) user.User {
	now := time.Now().UTC()
	return user.User{
		ID:           "user-admin",
		Email:        "admin@ponpro.local",
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
