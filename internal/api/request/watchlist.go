package request

type AddWatchlistSymbolRequest struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"displayName,omitempty"`
}
