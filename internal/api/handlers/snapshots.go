package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/response"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/service"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/validation"
)

// SnapshotHandler handles HTTP requests for snapshot and recompute endpoints.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Timeline handles GET requests for a symbol's full snapshot series.
// Optional start and end query parameters (YYYY-MM-DD) restrict the range.
//
// Endpoint: GET /api/snapshot/{symbol}
// Response: 200 OK with array of DailySnapshot
// Error: 400 Bad Request if the date range is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	if start != "" && end != "" {
		if err := validation.ValidateDateRange(start, end); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
			return
		}
	}

	snaps, err := h.snapshotService.GetTimeline(symbol, start, end)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snaps)
}

// Latest handles GET requests for a symbol's most recent snapshot.
//
// Endpoint: GET /api/snapshot/{symbol}/latest
// Response: 200 OK with DailySnapshot
// Error: 404 Not Found if no snapshot exists for the symbol
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Latest(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	snap, err := h.snapshotService.GetLatest(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snap)
}

// TopOpportunities handles GET requests for the days a symbol left the most
// money on the table, largest first. The limit query parameter caps the
// result count and defaults to 10.
//
// Endpoint: GET /api/snapshot/{symbol}/opportunities
// Response: 200 OK with array of DailySnapshot
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) TopOpportunities(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	limit := queryInt(r, "limit", 10)

	snaps, err := h.snapshotService.TopOpportunities(symbol, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snaps)
}

// RecomputeSymbol handles POST requests to rebuild one symbol's snapshot series.
//
// Endpoint: POST /api/snapshot/{symbol}/recompute
// Response: 204 No Content
// Error: 409 Conflict if the series oversells in strict mode
// Error: 500 Internal Server Error if the recompute fails
func (h *SnapshotHandler) RecomputeSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.snapshotService.RecomputeSymbol(r.Context(), symbol); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientShares) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientShares.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecompute.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RecomputeAll handles POST requests to rebuild every tracked symbol's series.
//
// Endpoint: POST /api/snapshot/recompute
// Response: 204 No Content
// Error: 500 Internal Server Error if any symbol fails to recompute
func (h *SnapshotHandler) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshotService.RecomputeAll(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecompute.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
