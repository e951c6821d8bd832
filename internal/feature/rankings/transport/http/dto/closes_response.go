package dto

// ClosesResponse は直近終値エンドポイントのレスポンスDTOです。
type ClosesResponse struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Closes    []float64 `json:"closes"` // 古い順
}

// ErrorResponse はエラーレスポンスの共通DTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
