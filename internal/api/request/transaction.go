package request

// Decimal fields arrive as strings so values survive the wire without
// float rounding.

type CreateTransactionRequest struct {
	Symbol   string   `json:"symbol"`
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	Quantity string   `json:"quantity"`
	Price    string   `json:"price"`
	Fee      string   `json:"fee,omitempty"`
	Tax      string   `json:"tax,omitempty"`
	Currency string   `json:"currency,omitempty"`
	LotIDs   []string `json:"lotIds,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type UpdateTransactionRequest struct {
	Date     *string  `json:"date,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Quantity *string  `json:"quantity,omitempty"`
	Price    *string  `json:"price,omitempty"`
	Fee      *string  `json:"fee,omitempty"`
	Tax      *string  `json:"tax,omitempty"`
	Currency *string  `json:"currency,omitempty"`
	LotIDs   []string `json:"lotIds,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}
