package employee

// Employee is the directory record referenced by attendance cells.
// Owned by the HR employee CRUD; this subsystem only reads it.
type Employee struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	DepartmentID string  `json:"department_id"`
	Position     *string `json:"position,omitempty"`
}
