package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
	"github.com/moundir-nedjm/ponpro-backend/internal/repository/memory"
	serviceAuth "github.com/moundir-nedjm/ponpro-backend/internal/service/auth"
	matrixService "github.com/moundir-nedjm/ponpro-backend/internal/service/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDept = "dept-ops"

type captureNotifier struct {
	mu      sync.Mutex
	changes []matrix.CellChange
}

func (n *captureNotifier) PublishCellChange(_ string, _ string, change matrix.CellChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
}

func (n *captureNotifier) all() []matrix.CellChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]matrix.CellChange(nil), n.changes...)
}

func deptPtr(s string) *string { return &s }

type testEnv struct {
	svc      attendance.Service
	cells    *memory.CellRepository
	codes    *memory.CodeRepository
	notifier *captureNotifier
	matrix   *matrixService.MatrixServiceImpl
	guard    *code.ReferenceGuard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cells := memory.NewCellRepository()
	codes := memory.NewCodeRepository(
		code.AttendanceCode{Symbol: "P", Category: code.CategoryPresent, PaymentImpact: code.PaymentFull},
		code.AttendanceCode{Symbol: "RT", Category: code.CategoryPresent, PaymentImpact: code.PaymentFull},
		code.AttendanceCode{Symbol: "CA", Category: code.CategoryLeave, PaymentImpact: code.PaymentFull},
		code.AttendanceCode{Symbol: "JF", Category: code.CategoryHoliday, PaymentImpact: code.PaymentFull},
		code.AttendanceCode{Symbol: "W", Category: code.CategoryWeekend, PaymentImpact: code.PaymentNone},
		code.AttendanceCode{Symbol: "PP", Category: code.CategoryPresent, PaymentImpact: code.PaymentPremium, DefaultPremiumAmount: 500},
	)
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "emp-1", FullName: "Amina Benali", DepartmentID: testDept},
		employee.Employee{ID: "emp-2", FullName: "Karim Haddad", DepartmentID: testDept},
	)
	holidays, err := memory.NewHolidayRepository()
	require.NoError(t, err)
	users := memory.NewUserRepository(
		user.User{ID: "user-admin", Email: "admin@example.com", IsAdmin: true},
		user.User{ID: "user-mgr", Email: "mgr@example.com", DepartmentID: deptPtr(testDept)},
		user.User{ID: "user-out", Email: "out@example.com", DepartmentID: deptPtr("dept-sales")},
		user.User{ID: "user-none", Email: "none@example.com"},
	)

	rules := matrixService.Rules{
		WorkdayStart:  8 * time.Hour,
		Grace:         15 * time.Minute,
		PresentSymbol: "P",
		LateSymbol:    "RT",
		HolidaySymbol: "JF",
		WeekendSymbol: "W",
	}
	matrixSvc := matrixService.NewMatrixService(
		cells, codes, employees, holidays,
		[]time.Weekday{time.Saturday, time.Sunday},
		rules, 0,
	)
	notifier := &captureNotifier{}
	authorizer := serviceAuth.NewEditorAuthorizer(users, employees)
	guard := code.NewReferenceGuard()

	svc := NewAttendanceService(cells, codes, employees, authorizer, matrixSvc, notifier, guard)
	return &testEnv{svc: svc, cells: cells, codes: codes, notifier: notifier, matrix: matrixSvc, guard: guard}
}

func TestRecordCheckIn_FirstInWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "08:30"})
	require.NoError(t, err)
	require.NotNil(t, first.CheckIn)

	// An earlier duplicate replaces the stored time.
	earlier, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "08:10"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10 08:10:00", *earlier.CheckIn)

	// A later duplicate does not.
	later, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "08:45"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10 08:10:00", *later.CheckIn)
	assert.Equal(t, first.ID, later.ID, "repeats must hit the same cell")
}

func TestRecordCheckOut_LastOutWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.RecordCheckOut(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "17:00"})
	require.NoError(t, err)

	later, err := env.svc.RecordCheckOut(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "18:30"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10 18:30:00", *later.CheckOut)

	earlier, err := env.svc.RecordCheckOut(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "16:00"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10 18:30:00", *earlier.CheckOut)
}

func TestRecordCheckIn_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RecordCheckIn(context.Background(), attendance.CheckEventRequest{EmployeeID: "emp-ghost", Date: "2025-03-10", Time: "08:00"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRecordCheckIn_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RecordCheckIn(context.Background(), attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "10/03/2025", Time: "08:00"})
	require.Error(t, err)
}

func TestAssignCode_AdminAnywhere(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.AssignCode(context.Background(), attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", EditorID: "user-admin",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.AssignedSymbol)
	assert.Equal(t, "CA", *resp.AssignedSymbol)
	assert.Equal(t, "user-admin", resp.ModifiedBy)
}

func TestAssignCode_ManagerScopedToDepartment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", EditorID: "user-mgr",
	})
	assert.NoError(t, err)

	_, err = env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", EditorID: "user-out",
	})
	assert.ErrorIs(t, err, attendance.ErrForbidden)

	_, err = env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", EditorID: "user-none",
	})
	assert.ErrorIs(t, err, attendance.ErrForbidden)
}

func TestAssignCode_NoEditor(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.AssignCode(context.Background(), attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA",
	})
	assert.ErrorIs(t, err, attendance.ErrForbidden)
}

func TestAssignCode_UnknownSymbol(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.AssignCode(context.Background(), attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "NOPE", EditorID: "user-admin",
	})
	assert.ErrorIs(t, err, attendance.ErrUnknownCode)
}

func TestAssignCode_PremiumHandling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	amount := 750.0

	// Premium submitted with a non-premium code is zeroed.
	resp, err := env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", PremiumAmount: &amount, EditorID: "user-admin",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PremiumAmount)

	// Premium code without an amount falls back to the catalog default.
	resp, err = env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-11", Symbol: "PP", EditorID: "user-admin",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PremiumAmount)
	assert.Equal(t, 500.0, *resp.PremiumAmount)

	// Explicit amount on a premium code is kept.
	resp, err = env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-12", Symbol: "PP", PremiumAmount: &amount, EditorID: "user-admin",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PremiumAmount)
	assert.Equal(t, 750.0, *resp.PremiumAmount)
}

func TestAssignCode_ManualSurvivesLaterEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", EditorID: "user-admin",
	})
	require.NoError(t, err)

	// A device event after the assignment records the fact but the
	// manual code still wins at resolution.
	resp, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "08:05"})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckIn)
	require.NotNil(t, resp.AssignedSymbol)
	assert.Equal(t, "CA", *resp.AssignedSymbol)

	changes := env.notifier.all()
	require.NotEmpty(t, changes)
	last := changes[len(changes)-1]
	assert.Equal(t, "CA", last.Cell.Symbol)
	assert.Equal(t, matrix.SourceManual, last.Cell.Source)
}

func TestMutationsPublishResolvedChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "08:31"})
	require.NoError(t, err)

	changes := env.notifier.all()
	require.Len(t, changes, 1)
	assert.Equal(t, "emp-1", changes[0].EmployeeID)
	assert.Equal(t, "2025-03-10", changes[0].Date)
	assert.Equal(t, "RT", changes[0].Cell.Symbol, "08:31 is past 08:00 start + 15m grace")
	assert.Equal(t, matrix.SourceDerived, changes[0].Cell.Source)
}

func TestMutationsPatchCachedMatrix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.matrix.GetMonthlyMatrix(ctx, testDept, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 0, before.ColumnTotals[9]["P"])

	_, err = env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{EmployeeID: "emp-1", Date: "2025-03-10", Time: "08:00"})
	require.NoError(t, err)

	after, err := env.matrix.GetMonthlyMatrix(ctx, testDept, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 1, after.ColumnTotals[9]["P"])
}

func TestConcurrentCheckInsKeepEarliest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(minute int) {
			defer wg.Done()
			_, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{
				EmployeeID: "emp-1",
				Date:       "2025-03-10",
				Time:       fmt.Sprintf("08:%02d", minute),
			})
			assert.NoError(t, err)
		}(i + 10)
	}
	wg.Wait()

	resp, err := env.svc.GetCell(ctx, "emp-1", "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, "2025-03-10 08:10:00", *resp.CheckIn)
}

// A manual assignment and a device check-in racing on the same cell
// must both land: neither write may clobber the other's field, and the
// manual code wins at resolution regardless of arrival order.
func TestConcurrentAssignAndCheckInBothSurvive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for day := 10; day <= 14; day++ {
		date := fmt.Sprintf("2025-03-%02d", day)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
				EmployeeID: "emp-1", Date: date, Symbol: "CA", EditorID: "user-admin",
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := env.svc.RecordCheckIn(ctx, attendance.CheckEventRequest{
				EmployeeID: "emp-1", Date: date, Time: "08:05",
			})
			assert.NoError(t, err)
		}()
		wg.Wait()

		resp, err := env.svc.GetCell(ctx, "emp-1", date)
		require.NoError(t, err)
		require.NotNil(t, resp.CheckIn, "check-in lost on %s", date)
		assert.Equal(t, fmt.Sprintf("%s 08:05:00", date), *resp.CheckIn)
		require.NotNil(t, resp.AssignedSymbol, "assignment lost on %s", date)
		assert.Equal(t, "CA", *resp.AssignedSymbol)

		// The final published state resolves to the manual code.
		changes := env.notifier.all()
		last := changes[len(changes)-1]
		assert.Equal(t, "CA", last.Cell.Symbol)
		assert.Equal(t, matrix.SourceManual, last.Cell.Source)
	}
}

// While a catalog deletion is in progress, an assignment waits and then
// sees the post-deletion catalog instead of writing a reference to a
// symbol that is about to disappear.
func TestAssignCode_HeldOffDuringCatalogDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	release := env.guard.BeginDeletion()

	done := make(chan error, 1)
	go func() {
		_, err := env.svc.AssignCode(ctx, attendance.AssignCodeRequest{
			EmployeeID: "emp-1", Date: "2025-03-10", Symbol: "CA", EditorID: "user-admin",
		})
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("assignment completed while a catalog deletion was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, env.codes.Delete(ctx, "CA"))
	release()

	assert.ErrorIs(t, <-done, attendance.ErrUnknownCode)

	_, err := env.svc.GetCell(ctx, "emp-1", "2025-03-10")
	assert.ErrorIs(t, err, attendance.ErrCellNotFound)
}

func TestGetCell_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetCell(context.Background(), "emp-1", "2025-03-10")
	assert.ErrorIs(t, err, attendance.ErrCellNotFound)
}
