package user

import "time"

// User is an editor account. Full account management lives in the HR
// application; this core only needs login and the write-gate.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	EmployeeID   *string
	DepartmentID *string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
