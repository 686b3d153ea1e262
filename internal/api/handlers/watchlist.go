package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/response"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/service"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/validation"
)

// WatchlistHandler handles HTTP requests for watchlist endpoints.
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler with the provided service dependency.
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// Watchlist handles GET requests to retrieve all tracked symbols.
//
// Endpoint: GET /api/watchlist
// Response: 200 OK with array of WatchlistSymbol
// Error: 500 Internal Server Error if retrieval fails
func (h *WatchlistHandler) Watchlist(w http.ResponseWriter, _ *http.Request) {
	symbols, err := h.watchlistService.GetWatchlist()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveWatchlist.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, symbols)
}

// Summary handles GET requests for the dashboard overview: every tracked
// symbol with its latest snapshot and day-over-day price change.
//
// Endpoint: GET /api/watchlist/summary
// Response: 200 OK with array of WatchlistEntry
// Error: 500 Internal Server Error if retrieval fails
func (h *WatchlistHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.watchlistService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveWatchlist.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}

// AddSymbol handles POST requests to add a symbol to the watchlist.
//
// Endpoint: POST /api/watchlist
// Request Body: AddWatchlistSymbolRequest (symbol, displayName)
// Response: 201 Created with WatchlistSymbol
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the symbol is already tracked
// Error: 500 Internal Server Error if creation fails
func (h *WatchlistHandler) AddSymbol(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddWatchlistSymbolRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddWatchlistSymbol(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ws, err := h.watchlistService.AddSymbol(r.Context(), req.Symbol, req.DisplayName)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to add symbol", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ws)
}

// RemoveSymbol handles DELETE requests to remove a symbol from the watchlist.
// The symbol's snapshot series is removed with it.
//
// Endpoint: DELETE /api/watchlist/{symbol}
// Response: 204 No Content
// Error: 404 Not Found if the symbol is not tracked
// Error: 500 Internal Server Error if deletion fails
func (h *WatchlistHandler) RemoveSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.watchlistService.RemoveSymbol(r.Context(), symbol); err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSymbolNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to remove symbol", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
