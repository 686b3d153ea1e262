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

// PriceHandler handles HTTP requests for price bar and exchange rate endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// PricesPerSymbol handles GET requests for all price bars of a symbol, oldest first.
//
// Endpoint: GET /api/price/{symbol}
// Response: 200 OK with array of PriceBar
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) PricesPerSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	prices, err := h.priceService.GetPrices(symbol)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// UpsertPrice handles POST requests to insert or replace a price bar.
// Upserting a price recomputes the symbol's snapshot series.
//
// Endpoint: POST /api/price
// Request Body: UpsertPriceRequest (symbol, date, adjClose, currency)
// Response: 200 OK with PriceBar
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the resulting series oversells in strict mode
// Error: 500 Internal Server Error if the upsert fails
func (h *PriceHandler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	bar, err := h.priceService.UpsertPrice(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientShares) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientShares.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to upsert price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bar)
}

// UpsertExchangeRate handles POST requests to insert or replace a conversion rate.
//
// Endpoint: POST /api/price/rate
// Request Body: UpsertExchangeRateRequest (date, fromCurrency, toCurrency, rate)
// Response: 200 OK with ExchangeRate
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the upsert fails
func (h *PriceHandler) UpsertExchangeRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertExchangeRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertExchangeRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	rate, err := h.priceService.UpsertExchangeRate(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to upsert exchange rate", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}
