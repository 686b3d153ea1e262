package request

type UpsertPriceRequest struct {
	Symbol   string `json:"symbol"`
	Date     string `json:"date"`
	AdjClose string `json:"adjClose"`
	Currency string `json:"currency,omitempty"`
}

type UpsertExchangeRateRequest struct {
	Date         string `json:"date"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Rate         string `json:"rate"`
}
