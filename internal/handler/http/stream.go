package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/auth"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/response"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/jwt"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/sse"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
	"github.com/moundir-nedjm/ponpro-backend/internal/service/notifier"
)

const streamHeartbeatInterval = 25 * time.Second

type StreamHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type StreamHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewStreamHandler(hub *sse.Hub, jwtService jwt.Service) StreamHandler {
	return &StreamHandlerImpl{hub: hub, jwtService: jwtService}
}

// Stream serves GET /attendance/stream?token=...&department=...&month=YYYY-MM.
// It pushes cell_change events for one department and month until the
// client disconnects. The token comes from GET /attendance/stream/token
// because EventSource cannot send Authorization headers.
func (h *StreamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID, err := h.jwtService.ValidateSSEToken(query.Get("token"))
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	departmentID := query.Get("department")
	yearMonth := query.Get("month")
	if validator.IsEmpty(departmentID) {
		response.HandleError(w, matrix.ErrDepartmentRequired)
		return
	}
	if _, _, ok := validator.IsValidYearMonth(yearMonth); !ok {
		response.HandleError(w, matrix.ErrInvalidYearMonth)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	topic := notifier.Topic(departmentID, yearMonth)
	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	slog.Info("stream subscriber connected", "user_id", userID, "department_id", departmentID, "month", yearMonth)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("stream subscriber disconnected", "user_id", userID, "department_id", departmentID, "month", yearMonth)
			return

		case <-heartbeat.C:
			// Comment line keeps intermediaries from closing idle streams.
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()

		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("stream encode error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
			flusher.Flush()
		}
	}
}
