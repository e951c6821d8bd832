// Package dto defines data transfer objects for the rankings HTTP API.
package dto

// BollingerResponse はボリンジャーバンドのレスポンスDTOです。
type BollingerResponse struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// IndicatorSetResponse はテクニカル指標のレスポンスDTOです。
type IndicatorSetResponse struct {
	EMA20           float64           `json:"ema20"`
	EMA50           float64           `json:"ema50"`
	EMA200          float64           `json:"ema200"`
	Bollinger       BollingerResponse `json:"bollinger"`
	VolumeChangePct float64           `json:"volume_change_pct"`
}

// RankingEntryResponse は1銘柄のランキング結果のレスポンスDTOです。
type RankingEntryResponse struct {
	Symbol     string               `json:"symbol"`
	Timeframe  string               `json:"timeframe"`
	Rank       int                  `json:"rank"`
	Score      float64              `json:"score"`
	Indicators IndicatorSetResponse `json:"indicators"`
	Highlights []string             `json:"highlights"`
}

// RankingsSnapshotResponse は全時間足のランキングスナップショットのレスポンスDTOです。
type RankingsSnapshotResponse struct {
	GeneratedAt string                            `json:"generated_at"`
	Timeframes  map[string][]RankingEntryResponse `json:"timeframes"`
}

// TimeframeRankingsResponse は単一時間足のスライスのレスポンスDTOです。
type TimeframeRankingsResponse struct {
	GeneratedAt string                 `json:"generated_at"`
	Timeframe   string                 `json:"timeframe"`
	Entries     []RankingEntryResponse `json:"entries"`
}
