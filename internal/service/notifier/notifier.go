package notifier

import (
	"log/slog"
	"sync"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/sse"
)

// EventCellChange is the SSE event name for cell updates.
const EventCellChange = "cell_change"

// Topic names the broadcast scope for one department and month.
func Topic(departmentID string, yearMonth string) string {
	return departmentID + "|" + yearMonth
}

// CellNotifier relays resolved-cell changes to matrix viewers through
// the SSE hub. Delivery is at-most-once; a missed event is recovered
// by re-fetching the matrix. Events for the same cell are published in
// lastModified order: anything older than the last published change
// for that cell is dropped.
type CellNotifier struct {
	hub *sse.Hub

	mu sync.Mutex
	// Per-cell publish timestamps, bucketed by yearMonth so stale state
	// for past months can be dropped instead of accumulating forever.
	months map[string]map[string]time.Time
}

func NewCellNotifier(hub *sse.Hub) *CellNotifier {
	return &CellNotifier{
		hub:    hub,
		months: make(map[string]map[string]time.Time),
	}
}

// PublishCellChange implements matrix.Notifier.
func (n *CellNotifier) PublishCellChange(departmentID string, yearMonth string, change matrix.CellChange) {
	cellKey := departmentID + "|" + change.EmployeeID + "|" + change.Date

	n.mu.Lock()
	bucket := n.months[yearMonth]
	if bucket == nil {
		bucket = make(map[string]time.Time)
		n.months[yearMonth] = bucket
	}
	if last, ok := bucket[cellKey]; ok && !change.NewerThan(last) {
		n.mu.Unlock()
		slog.Debug("dropping stale cell change event",
			"employee_id", change.EmployeeID,
			"date", change.Date,
		)
		return
	}
	bucket[cellKey] = change.LastModified
	n.evictBefore(yearMonth)
	n.mu.Unlock()

	topic := Topic(departmentID, yearMonth)
	n.hub.Publish(topic, sse.Event{
		Topic: topic,
		Event: EventCellChange,
		Data:  change,
	})
}

// evictBefore drops the publish timestamps for months more than one
// month behind yearMonth. An edit that far back loses the publish-side
// dedupe, which is safe: subscribers compare lastModified themselves
// and recover by re-fetching. Called with n.mu held.
func (n *CellNotifier) evictBefore(yearMonth string) {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return
	}
	cutoff := t.AddDate(0, -1, 0).Format("2006-01")
	for ym := range n.months {
		if ym < cutoff {
			delete(n.months, ym)
		}
	}
}
