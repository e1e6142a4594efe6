package notifier

import (
	"testing"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func change(employeeID, date string, ts time.Time) matrix.CellChange {
	return matrix.CellChange{
		EmployeeID:   employeeID,
		Date:         date,
		LastModified: ts,
	}
}

func TestPublishCellChange_DeliversToTopic(t *testing.T) {
	hub := sse.NewHub()
	n := NewCellNotifier(hub)

	events, cleanup := hub.Subscribe(Topic("dept-ops", "2025-03"))
	defer cleanup()

	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", time.Now()))

	require.Len(t, events, 1)
	ev := <-events
	assert.Equal(t, EventCellChange, ev.Event)
	got, ok := ev.Data.(matrix.CellChange)
	require.True(t, ok)
	assert.Equal(t, "emp-1", got.EmployeeID)
}

func TestPublishCellChange_ScopedByDepartmentAndMonth(t *testing.T) {
	hub := sse.NewHub()
	n := NewCellNotifier(hub)

	other, cleanupOther := hub.Subscribe(Topic("dept-sales", "2025-03"))
	defer cleanupOther()
	otherMonth, cleanupMonth := hub.Subscribe(Topic("dept-ops", "2025-04"))
	defer cleanupMonth()

	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", time.Now()))

	assert.Len(t, other, 0)
	assert.Len(t, otherMonth, 0)
}

func TestPublishCellChange_DropsStaleEvents(t *testing.T) {
	hub := sse.NewHub()
	n := NewCellNotifier(hub)

	events, cleanup := hub.Subscribe(Topic("dept-ops", "2025-03"))
	defer cleanup()

	now := time.Now()
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now))
	// Older and equal timestamps for the same cell are dropped.
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now.Add(-time.Second)))
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now))

	assert.Len(t, events, 1)

	// A genuinely newer change goes through.
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now.Add(time.Second)))
	assert.Len(t, events, 2)
}

// Dedupe state is kept per month and dropped once activity moves well
// past it, so the notifier does not accumulate an entry for every cell
// ever published. An out-of-order event for an evicted month is
// delivered rather than deduped; subscribers compare timestamps.
func TestPublishCellChange_DropsStaleGuardForPastMonths(t *testing.T) {
	hub := sse.NewHub()
	n := NewCellNotifier(hub)

	january, cleanup := hub.Subscribe(Topic("dept-ops", "2025-01"))
	defer cleanup()

	now := time.Now()
	n.PublishCellChange("dept-ops", "2025-01", change("emp-1", "2025-01-10", now))
	require.Len(t, january, 1)

	// Activity two months later evicts the January bucket.
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now))

	// Without the January state this older event passes through.
	n.PublishCellChange("dept-ops", "2025-01", change("emp-1", "2025-01-10", now.Add(-time.Hour)))
	assert.Len(t, january, 2)
}

// Publishing into an old month must never evict the current month's
// dedupe state.
func TestPublishCellChange_OldMonthKeepsCurrentGuard(t *testing.T) {
	hub := sse.NewHub()
	n := NewCellNotifier(hub)

	march, cleanup := hub.Subscribe(Topic("dept-ops", "2025-03"))
	defer cleanup()

	now := time.Now()
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now))
	n.PublishCellChange("dept-ops", "2024-11", change("emp-1", "2024-11-03", now))

	// Still deduped: the March bucket survived the old-month publish.
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now.Add(-time.Second)))
	assert.Len(t, march, 1)
}

func TestPublishCellChange_StaleGuardIsPerCell(t *testing.T) {
	hub := sse.NewHub()
	n := NewCellNotifier(hub)

	events, cleanup := hub.Subscribe(Topic("dept-ops", "2025-03"))
	defer cleanup()

	now := time.Now()
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-10", now))
	// A different cell with an older timestamp is not stale.
	n.PublishCellChange("dept-ops", "2025-03", change("emp-2", "2025-03-10", now.Add(-time.Minute)))
	n.PublishCellChange("dept-ops", "2025-03", change("emp-1", "2025-03-11", now.Add(-time.Minute)))

	assert.Len(t, events, 3)
}
