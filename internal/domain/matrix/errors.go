package matrix

import "errors"

var (
	ErrDepartmentRequired = errors.New("department is required")
	ErrInvalidYearMonth   = errors.New("year-month must be YYYY-MM")
)
