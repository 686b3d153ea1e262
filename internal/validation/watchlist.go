package validation

import (
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
)

// ValidateAddWatchlistSymbol validates a watchlist addition request.
func ValidateAddWatchlistSymbol(req request.AddWatchlistSymbolRequest) error {
	errors := make(map[string]string)

	if err := ValidateSymbol(req.Symbol); err != nil {
		errors["symbol"] = err.Error()
	}
	if len(req.DisplayName) > 128 {
		errors["displayName"] = "displayName must be at most 128 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
