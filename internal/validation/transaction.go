package validation

import (
	"fmt"
	"strings"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - symbol: Ticker symbol, letters/digits/dot/dash
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: BUY, SELL, DIVIDEND, FEE, SPLIT
//   - quantity: Decimal string, must be positive
//   - price: Decimal string, must be non-negative
//
// Fee and tax default to zero when omitted. lotIds are only meaningful for
// SELL transactions matched under specific identification and must be UUIDs.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateSymbol(req.Symbol); err != nil {
		errors["symbol"] = err.Error()
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.TransactionTypes[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if qty, ok := parseDecimalField(errors, "quantity", req.Quantity); ok && !qty.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if price, ok := parseDecimalField(errors, "price", req.Price); ok && price.IsNegative() {
		errors["price"] = "price must not be negative"
	}
	if req.Fee != "" {
		if fee, ok := parseDecimalField(errors, "fee", req.Fee); ok && fee.IsNegative() {
			errors["fee"] = "fee must not be negative"
		}
	}
	if req.Tax != "" {
		if tax, ok := parseDecimalField(errors, "tax", req.Tax); ok && tax.IsNegative() {
			errors["tax"] = "tax must not be negative"
		}
	}

	if len(req.LotIDs) > 0 {
		if req.Type != model.TransactionSell {
			errors["lotIds"] = "lotIds are only valid on SELL transactions"
		} else if err := ValidateUUIDs(req.LotIDs); err != nil {
			errors["lotIds"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if err := ValidateDate(*req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !model.TransactionTypes[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Quantity != nil {
		if qty, ok := parseDecimalField(errors, "quantity", *req.Quantity); ok && !qty.IsPositive() {
			errors["quantity"] = "quantity must be positive"
		}
	}
	if req.Price != nil {
		if price, ok := parseDecimalField(errors, "price", *req.Price); ok && price.IsNegative() {
			errors["price"] = "price must not be negative"
		}
	}
	if req.Fee != nil && *req.Fee != "" {
		if fee, ok := parseDecimalField(errors, "fee", *req.Fee); ok && fee.IsNegative() {
			errors["fee"] = "fee must not be negative"
		}
	}
	if req.Tax != nil && *req.Tax != "" {
		if tax, ok := parseDecimalField(errors, "tax", *req.Tax); ok && tax.IsNegative() {
			errors["tax"] = "tax must not be negative"
		}
	}
	if len(req.LotIDs) > 0 {
		if err := ValidateUUIDs(req.LotIDs); err != nil {
			errors["lotIds"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
