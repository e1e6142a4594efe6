package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	AssignCode(w http.ResponseWriter, r *http.Request)
	GetCell(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cell, err := h.attendanceService.RecordCheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "employee_id", req.EmployeeID, "date", req.Date)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cell)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cell, err := h.attendanceService.RecordCheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "employee_id", req.EmployeeID, "date", req.Date)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cell)
}

// AssignCode implements AttendanceHandler. The editor identity always
// comes from the verified claims, never from the request body.
func (h *AttendanceHandlerImpl) AssignCode(w http.ResponseWriter, r *http.Request) {
	var req attendance.AssignCodeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignCode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cell, err := h.attendanceService.AssignCode(r.Context(), req)
	if err != nil {
		slog.Error("AssignCode service error", "error", err, "employee_id", req.EmployeeID, "date", req.Date, "symbol", req.Symbol)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cell)
}

// GetCell implements AttendanceHandler. It serves
// GET /attendance/cells?employee=...&date=YYYY-MM-DD.
func (h *AttendanceHandlerImpl) GetCell(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee")
	date := r.URL.Query().Get("date")

	cell, err := h.attendanceService.GetCell(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cell)
}
