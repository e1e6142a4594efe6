package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	cells      attendance.CellRepository
	codes      code.Repository
	employees  employee.Repository
	authorizer attendance.Authorizer
	matrixSvc  matrix.Service
	notifier   matrix.Notifier
	guard      *code.ReferenceGuard
	locks      *cellLocks
}

func NewAttendanceService(
	cells attendance.CellRepository,
	codes code.Repository,
	employees employee.Repository,
	authorizer attendance.Authorizer,
	matrixSvc matrix.Service,
	notifier matrix.Notifier,
	guard *code.ReferenceGuard,
) attendance.Service {
	return &AttendanceServiceImpl{
		cells:      cells,
		codes:      codes,
		employees:  employees,
		authorizer: authorizer,
		matrixSvc:  matrixSvc,
		notifier:   notifier,
		guard:      guard,
		locks:      newCellLocks(),
	}
}

func lockKey(employeeID string, date time.Time) string {
	return employeeID + "|" + calendar.DateKey(date)
}

// editorFromContext extracts the acting user from JWT claims. Device
// feeds without a user principal fall back to "system".
func editorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "system"
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	return "system"
}

// RecordCheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) RecordCheckIn(ctx context.Context, req attendance.CheckEventRequest) (attendance.CellResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CellResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)
	eventTime := req.Timestamp()

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	release := s.locks.acquire(lockKey(req.EmployeeID, date))
	defer release()

	cell, err := s.loadOrNewCell(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.CellResponse{}, err
	}

	// First in: a repeated check-in keeps the earliest time. The event
	// is recorded even when a code was assigned manually, but it never
	// touches the assignment (manual wins at resolution).
	if cell.CheckIn == nil || eventTime.Before(*cell.CheckIn) {
		cell.CheckIn = &eventTime
	}
	cell.LastModified = time.Now().UTC()
	cell.ModifiedBy = editorFromContext(ctx)

	saved, err := s.cells.Upsert(ctx, cell)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	s.propagate(ctx, emp, saved)
	return toCellResponse(saved), nil
}

// RecordCheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) RecordCheckOut(ctx context.Context, req attendance.CheckEventRequest) (attendance.CellResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CellResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)
	eventTime := req.Timestamp()

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	release := s.locks.acquire(lockKey(req.EmployeeID, date))
	defer release()

	cell, err := s.loadOrNewCell(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.CellResponse{}, err
	}

	// Last out: a repeated check-out keeps the latest time.
	if cell.CheckOut == nil || eventTime.After(*cell.CheckOut) {
		cell.CheckOut = &eventTime
	}
	cell.LastModified = time.Now().UTC()
	cell.ModifiedBy = editorFromContext(ctx)

	saved, err := s.cells.Upsert(ctx, cell)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	s.propagate(ctx, emp, saved)
	return toCellResponse(saved), nil
}

// AssignCode implements attendance.Service.
func (s *AttendanceServiceImpl) AssignCode(ctx context.Context, req attendance.AssignCodeRequest) (attendance.CellResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CellResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	editorID := req.EditorID
	if editorID == "" {
		editorID = editorFromContext(ctx)
	}
	if editorID == "" || editorID == "system" {
		return attendance.CellResponse{}, attendance.ErrForbidden
	}

	allowed, err := s.authorizer.CanAssignCode(ctx, editorID, req.EmployeeID)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to check assignment permission: %w", err)
	}
	if !allowed {
		return attendance.CellResponse{}, attendance.ErrForbidden
	}

	// Hold off catalog deletions from the symbol lookup through the
	// upsert, so the code cannot vanish while the reference is written.
	releaseGuard := s.guard.BeginReference()
	defer releaseGuard()

	assigned, err := s.codes.GetBySymbol(ctx, req.Symbol)
	if err != nil {
		if errors.Is(err, code.ErrCodeNotFound) {
			return attendance.CellResponse{}, attendance.ErrUnknownCode
		}
		return attendance.CellResponse{}, fmt.Errorf("failed to look up code: %w", err)
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	// A premium amount only makes sense on premium codes; anything
	// submitted alongside another code is zeroed, not guessed at.
	var premium *float64
	if assigned.PaymentImpact == code.PaymentPremium {
		if req.PremiumAmount != nil {
			premium = req.PremiumAmount
		} else {
			amount := assigned.DefaultPremiumAmount
			premium = &amount
		}
	}

	release := s.locks.acquire(lockKey(req.EmployeeID, date))
	defer release()

	cell, err := s.loadOrNewCell(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.CellResponse{}, err
	}

	symbol := assigned.Symbol
	cell.AssignedSymbol = &symbol
	cell.PremiumAmount = premium
	cell.LastModified = time.Now().UTC()
	cell.ModifiedBy = editorID

	saved, err := s.cells.Upsert(ctx, cell)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to assign code: %w", err)
	}

	s.propagate(ctx, emp, saved)
	return toCellResponse(saved), nil
}

// GetCell implements attendance.Service.
func (s *AttendanceServiceImpl) GetCell(ctx context.Context, employeeID string, dateStr string) (attendance.CellResponse, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return attendance.CellResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "date must be YYYY-MM-DD"},
		}
	}

	cell, err := s.cells.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.CellResponse{}, fmt.Errorf("failed to get cell: %w", err)
	}
	if cell == nil {
		return attendance.CellResponse{}, attendance.ErrCellNotFound
	}
	return toCellResponse(*cell), nil
}

func (s *AttendanceServiceImpl) loadOrNewCell(ctx context.Context, employeeID string, date time.Time) (attendance.Cell, error) {
	existing, err := s.cells.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Cell{}, fmt.Errorf("failed to load cell: %w", err)
	}
	if existing != nil {
		return existing.Clone(), nil
	}
	return attendance.Cell{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}

// propagate resolves the mutated cell, patches the cached matrix and
// broadcasts the change. Called while the per-cell lock is still held,
// which keeps per-cell event order monotonic and respects the
// cell-lock-before-cache-lock ordering rule.
func (s *AttendanceServiceImpl) propagate(ctx context.Context, emp employee.Employee, cell attendance.Cell) {
	resolved, err := s.matrixSvc.ResolveCell(ctx, cell.EmployeeID, cell.Date, &cell)
	if err != nil {
		// The write itself succeeded; viewers recover on next fetch.
		slog.Error("failed to resolve cell for propagation",
			"employee_id", cell.EmployeeID,
			"date", calendar.DateKey(cell.Date),
			"error", err,
		)
		return
	}

	change := matrix.CellChange{
		EmployeeID:   cell.EmployeeID,
		Date:         calendar.DateKey(cell.Date),
		Cell:         resolved,
		LastModified: cell.LastModified,
	}

	s.matrixSvc.ApplyCellChange(emp.DepartmentID, change)
	s.notifier.PublishCellChange(emp.DepartmentID, calendar.YearMonthKey(cell.Date), change)
}

func toCellResponse(cell attendance.Cell) attendance.CellResponse {
	return attendance.CellResponse{
		ID:             cell.ID,
		EmployeeID:     cell.EmployeeID,
		Date:           calendar.DateKey(cell.Date),
		CheckIn:        timePtrToString(cell.CheckIn),
		CheckOut:       timePtrToString(cell.CheckOut),
		AssignedSymbol: cell.AssignedSymbol,
		PremiumAmount:  cell.PremiumAmount,
		LastModified:   cell.LastModified.Format(time.RFC3339),
		ModifiedBy:     cell.ModifiedBy,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}
