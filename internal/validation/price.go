package validation

import (
	"strings"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
)

// ValidateUpsertPrice validates a price bar upsert request.
func ValidateUpsertPrice(req request.UpsertPriceRequest) error {
	errors := make(map[string]string)

	if err := ValidateSymbol(req.Symbol); err != nil {
		errors["symbol"] = err.Error()
	}
	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}
	if price, ok := parseDecimalField(errors, "adjClose", req.AdjClose); ok && !price.IsPositive() {
		errors["adjClose"] = "adjClose must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpsertExchangeRate validates an exchange rate upsert request.
func ValidateUpsertExchangeRate(req request.UpsertExchangeRateRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}
	if len(req.FromCurrency) != 3 {
		errors["fromCurrency"] = "fromCurrency must be a 3-letter currency code"
	}
	if len(req.ToCurrency) != 3 {
		errors["toCurrency"] = "toCurrency must be a 3-letter currency code"
	}
	if rate, ok := parseDecimalField(errors, "rate", req.Rate); ok && !rate.IsPositive() {
		errors["rate"] = "rate must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
