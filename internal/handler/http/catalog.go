package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/response"
)

type CatalogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CatalogHandlerImpl struct {
	codeService code.Service
}

func NewCatalogHandler(codeService code.Service) CatalogHandler {
	return &CatalogHandlerImpl{codeService: codeService}
}

// List implements CatalogHandler.
func (h *CatalogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.codeService.ListCodes(r.Context())
	if err != nil {
		slog.Error("List codes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, codes)
}

// Get implements CatalogHandler.
func (h *CatalogHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	c, err := h.codeService.GetCode(r.Context(), symbol)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}

// Upsert implements CatalogHandler. The URL symbol is authoritative;
// the body may omit it.
func (h *CatalogHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req code.UpsertCodeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert code decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	symbol := chi.URLParam(r, "symbol")
	if req.Symbol != "" && req.Symbol != symbol {
		response.BadRequest(w, "Symbol in body does not match URL", nil)
		return
	}
	req.Symbol = symbol

	c, err := h.codeService.UpsertCode(r.Context(), req)
	if err != nil {
		slog.Error("Upsert code service error", "error", err, "symbol", req.Symbol)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance code saved", c)
}

// Delete implements CatalogHandler.
func (h *CatalogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.codeService.DeleteCode(r.Context(), symbol); err != nil {
		slog.Error("Delete code service error", "error", err, "symbol", symbol)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance code deleted", nil)
}
