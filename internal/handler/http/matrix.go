package http

import (
	"log/slog"
	"net/http"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/response"
)

type MatrixHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
}

type MatrixHandlerImpl struct {
	matrixService matrix.Service
}

func NewMatrixHandler(matrixService matrix.Service) MatrixHandler {
	return &MatrixHandlerImpl{matrixService: matrixService}
}

// GetMonthly implements MatrixHandler. It serves
// GET /attendance/matrix?department=...&month=YYYY-MM.
func (h *MatrixHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	departmentID := r.URL.Query().Get("department")
	yearMonth := r.URL.Query().Get("month")

	m, err := h.matrixService.GetMonthlyMatrix(r.Context(), departmentID, yearMonth)
	if err != nil {
		slog.Error("GetMonthly service error", "error", err, "department_id", departmentID, "month", yearMonth)
		response.HandleError(w, err)
		return
	}

	response.Success(w, m)
}
