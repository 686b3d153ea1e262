package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values as stored in the database and accepted by the API.
const (
	TransactionBuy      = "BUY"
	TransactionSell     = "SELL"
	TransactionDividend = "DIVIDEND"
	TransactionFee      = "FEE"
	TransactionSplit    = "SPLIT"
)

// TransactionTypes contains the allowed transaction type values.
var TransactionTypes = map[string]bool{
	TransactionBuy:      true,
	TransactionSell:     true,
	TransactionDividend: true,
	TransactionFee:      true,
	TransactionSplit:    true,
}

// Transaction represents a recorded buy/sell (or other) event for a symbol.
// Transactions are immutable inputs to the valuation engine; editing one
// through the API replaces the record and triggers a full snapshot rebuild.
type Transaction struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Fee       decimal.Decimal `json:"fee"`
	Tax       decimal.Decimal `json:"tax"`
	Currency  string          `json:"currency"`
	LotIDs    []string        `json:"lotIds,omitempty"` // opening transaction IDs, SPEC_ID sells only
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}
