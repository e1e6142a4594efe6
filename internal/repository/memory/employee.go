package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
)

// EmployeeRepository is an in-memory employee.Repository.
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee, len(seed))}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

// ListByDepartment implements employee.Repository. Rows come back in
// full-name order, matching the postgres repository.
func (r *EmployeeRepository) ListByDepartment(_ context.Context, departmentID string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var employees []employee.Employee
	for _, e := range r.employees {
		if e.DepartmentID == departmentID {
			employees = append(employees, e)
		}
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].FullName != employees[j].FullName {
			return employees[i].FullName < employees[j].FullName
		}
		return employees[i].ID < employees[j].ID
	})

	return employees, nil
}

// GetByID implements employee.Repository.
func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}
