package matrix

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type MatrixServiceImpl struct {
	cells     attendance.CellRepository
	codes     code.Repository
	employees employee.Repository
	holidays  calendar.HolidayRepository

	weekend      []time.Weekday
	rules        Rules
	buildTimeout time.Duration

	// cache guards the map; each cached matrix carries its own lock so
	// patches to different months never contend. Lock order: fact-store
	// cell lock (caller) -> s.mu -> cm.mu, never the reverse.
	mu    sync.Mutex
	cache map[string]*cachedMatrix
}

type cachedMatrix struct {
	mu       sync.Mutex
	matrix   matrix.MonthlyMatrix
	rowIndex map[string]int // employeeID -> row
	colIndex map[string]int // "YYYY-MM-DD" -> column
}

func NewMatrixService(
	cells attendance.CellRepository,
	codes code.Repository,
	employees employee.Repository,
	holidays calendar.HolidayRepository,
	weekend []time.Weekday,
	rules Rules,
	buildTimeout time.Duration,
) *MatrixServiceImpl {
	return &MatrixServiceImpl{
		cells:        cells,
		codes:        codes,
		employees:    employees,
		holidays:     holidays,
		weekend:      weekend,
		rules:        rules,
		buildTimeout: buildTimeout,
		cache:        make(map[string]*cachedMatrix),
	}
}

func cacheKey(departmentID, yearMonth string) string {
	return departmentID + "|" + yearMonth
}

// GetMonthlyMatrix implements matrix.Service.
func (s *MatrixServiceImpl) GetMonthlyMatrix(ctx context.Context, departmentID string, yearMonth string) (matrix.MonthlyMatrix, error) {
	if validator.IsEmpty(departmentID) {
		return matrix.MonthlyMatrix{}, matrix.ErrDepartmentRequired
	}
	year, month, ok := validator.IsValidYearMonth(yearMonth)
	if !ok {
		return matrix.MonthlyMatrix{}, matrix.ErrInvalidYearMonth
	}

	key := cacheKey(departmentID, yearMonth)
	s.mu.Lock()
	cm := s.cache[key]
	s.mu.Unlock()

	if cm != nil {
		cm.mu.Lock()
		snapshot := copyMatrix(cm.matrix)
		cm.mu.Unlock()
		return snapshot, nil
	}

	if s.buildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.buildTimeout)
		defer cancel()
	}

	built, err := s.build(ctx, departmentID, yearMonth, year, month)
	if err != nil {
		return matrix.MonthlyMatrix{}, err
	}

	// Partial results are served but never cached, so the next viewer
	// retries a full build.
	if !built.matrix.Incomplete {
		s.mu.Lock()
		s.cache[key] = built
		s.mu.Unlock()
	}

	built.mu.Lock()
	snapshot := copyMatrix(built.matrix)
	built.mu.Unlock()
	return snapshot, nil
}

func (s *MatrixServiceImpl) build(ctx context.Context, departmentID, yearMonth string, year int, month time.Month) (*cachedMatrix, error) {
	var (
		holidaySet calendar.HolidaySet
		catalog    []code.AttendanceCode
		staff      []employee.Employee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holidaySet, err = s.holidays.HolidaysForYear(gctx, year)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.codes.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		staff, err = s.employees.ListByDepartment(gctx, departmentID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return emptyIncomplete(departmentID, yearMonth), nil
		}
		return nil, err
	}

	days, err := calendar.Month(year, month, s.weekend, holidaySet)
	if err != nil {
		return nil, err
	}

	employeeIDs := make([]string, 0, len(staff))
	for _, e := range staff {
		employeeIDs = append(employeeIDs, e.ID)
	}

	var cells []attendance.Cell
	if len(employeeIDs) > 0 {
		cells, err = s.cells.ListByDateRange(ctx, employeeIDs, days[0].Date, days[len(days)-1].Date)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return emptyIncomplete(departmentID, yearMonth), nil
			}
			return nil, err
		}
	}

	cellsByKey := make(map[string]attendance.Cell, len(cells))
	for _, c := range cells {
		cellsByKey[c.EmployeeID+"|"+calendar.DateKey(c.Date)] = c
	}

	lookup := catalogLookup(catalog)

	cm := &cachedMatrix{
		matrix: matrix.MonthlyMatrix{
			DepartmentID: departmentID,
			YearMonth:    yearMonth,
			Days:         days,
			Rows:         make([]matrix.EmployeeRow, 0, len(staff)),
			ColumnTotals: newColumnTotals(len(days)),
			LastUpdated:  time.Now().UTC(),
		},
		rowIndex: make(map[string]int, len(staff)),
		colIndex: make(map[string]int, len(days)),
	}
	for i, d := range days {
		cm.colIndex[calendar.DateKey(d.Date)] = i
	}

	// O(employees x days); check the deadline per row so a huge
	// department degrades to a partial matrix instead of hanging.
	for _, emp := range staff {
		if ctx.Err() != nil {
			cm.matrix.Incomplete = true
			slog.Warn("matrix build interrupted by deadline",
				"department_id", departmentID,
				"year_month", yearMonth,
				"rows_built", len(cm.matrix.Rows),
				"rows_total", len(staff),
			)
			break
		}
		row := s.buildRow(emp, days, cellsByKey, lookup)
		cm.rowIndex[emp.ID] = len(cm.matrix.Rows)
		cm.matrix.Rows = append(cm.matrix.Rows, row)
		for i, rc := range row.Cells {
			if rc.Symbol != "" {
				cm.matrix.ColumnTotals[i][rc.Symbol]++
			}
		}
	}

	return cm, nil
}

func (s *MatrixServiceImpl) buildRow(emp employee.Employee, days []calendar.Day, cellsByKey map[string]attendance.Cell, lookup CodeLookup) matrix.EmployeeRow {
	row := matrix.EmployeeRow{
		Employee: emp,
		Cells:    make([]matrix.ResolvedCell, 0, len(days)),
		Totals:   make(matrix.RowTotals),
	}
	for _, day := range days {
		var cellPtr *attendance.Cell
		if c, ok := cellsByKey[emp.ID+"|"+calendar.DateKey(day.Date)]; ok {
			cellPtr = &c
		}
		rc := Resolve(emp.ID, day, cellPtr, lookup, s.rules)
		row.Cells = append(row.Cells, rc)
		row.Totals[rc.TotalsBucket()]++
	}
	return row
}

// ResolveCell implements matrix.Service.
func (s *MatrixServiceImpl) ResolveCell(ctx context.Context, employeeID string, date time.Time, cell *attendance.Cell) (matrix.ResolvedCell, error) {
	date = calendar.DateOnly(date)

	holidaySet, err := s.holidays.HolidaysForYear(ctx, date.Year())
	if err != nil {
		return matrix.ResolvedCell{}, err
	}

	isWeekend := false
	for _, w := range s.weekend {
		if date.Weekday() == w {
			isWeekend = true
			break
		}
	}
	day := calendar.Day{
		Date:      date,
		Weekday:   date.Weekday(),
		IsWeekend: isWeekend,
		IsHoliday: holidaySet.Contains(date),
	}

	lookup := func(symbol string) (code.AttendanceCode, bool) {
		c, err := s.codes.GetBySymbol(ctx, symbol)
		if err != nil {
			return code.AttendanceCode{}, false
		}
		return c, true
	}

	return Resolve(employeeID, day, cell, lookup, s.rules), nil
}

// ApplyCellChange implements matrix.Service. Only the affected row and
// column totals are touched; everything else in the cached matrix is
// left as is.
func (s *MatrixServiceImpl) ApplyCellChange(departmentID string, change matrix.CellChange) {
	if len(change.Date) < 7 {
		return
	}
	key := cacheKey(departmentID, change.Date[:7])

	s.mu.Lock()
	cm := s.cache[key]
	s.mu.Unlock()
	if cm == nil {
		// No viewer has built this month yet; the next read builds it
		// from the fact store.
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	ri, ok := cm.rowIndex[change.EmployeeID]
	if !ok {
		// Employee joined the department after the matrix was cached;
		// drop the cache so the next read includes the new row.
		s.mu.Lock()
		delete(s.cache, key)
		s.mu.Unlock()
		return
	}
	ci, ok := cm.colIndex[change.Date]
	if !ok {
		return
	}

	old := cm.matrix.Rows[ri].Cells[ci]
	if !old.LastModified.IsZero() && !change.NewerThan(old.LastModified) {
		slog.Debug("ignoring stale cell change",
			"employee_id", change.EmployeeID,
			"date", change.Date,
		)
		return
	}

	totals := cm.matrix.Rows[ri].Totals
	decrement(totals, old.TotalsBucket())
	totals[change.Cell.TotalsBucket()]++

	col := cm.matrix.ColumnTotals[ci]
	if old.Symbol != "" {
		decrement(col, old.Symbol)
	}
	if change.Cell.Symbol != "" {
		col[change.Cell.Symbol]++
	}

	cm.matrix.Rows[ri].Cells[ci] = change.Cell
	cm.matrix.LastUpdated = change.LastModified
}

// Invalidate implements matrix.Service.
func (s *MatrixServiceImpl) Invalidate(departmentID string, yearMonth string) {
	s.mu.Lock()
	delete(s.cache, cacheKey(departmentID, yearMonth))
	s.mu.Unlock()
}

func catalogLookup(catalog []code.AttendanceCode) CodeLookup {
	bySymbol := make(map[string]code.AttendanceCode, len(catalog))
	for _, c := range catalog {
		bySymbol[c.Symbol] = c
	}
	return func(symbol string) (code.AttendanceCode, bool) {
		c, ok := bySymbol[symbol]
		return c, ok
	}
}

func newColumnTotals(days int) matrix.ColumnTotals {
	totals := make(matrix.ColumnTotals, days)
	for i := range totals {
		totals[i] = make(map[string]int)
	}
	return totals
}

func emptyIncomplete(departmentID, yearMonth string) *cachedMatrix {
	return &cachedMatrix{
		matrix: matrix.MonthlyMatrix{
			DepartmentID: departmentID,
			YearMonth:    yearMonth,
			LastUpdated:  time.Now().UTC(),
			Incomplete:   true,
		},
	}
}

func decrement(m map[string]int, key string) {
	if m[key] <= 1 {
		delete(m, key)
		return
	}
	m[key]--
}

// copyMatrix returns a snapshot safe to hand to readers while patches
// keep mutating the cached instance.
func copyMatrix(m matrix.MonthlyMatrix) matrix.MonthlyMatrix {
	out := m
	out.Rows = make([]matrix.EmployeeRow, len(m.Rows))
	for i, row := range m.Rows {
		outRow := row
		outRow.Cells = append([]matrix.ResolvedCell(nil), row.Cells...)
		outRow.Totals = make(matrix.RowTotals, len(row.Totals))
		for k, v := range row.Totals {
			outRow.Totals[k] = v
		}
		out.Rows[i] = outRow
	}
	out.ColumnTotals = make(matrix.ColumnTotals, len(m.ColumnTotals))
	for i, col := range m.ColumnTotals {
		copied := make(map[string]int, len(col))
		for k, v := range col {
			copied[k] = v
		}
		out.ColumnTotals[i] = copied
	}
	return out
}
