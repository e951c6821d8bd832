package entity

import "time"

// Candle は1つの時間バケットに対するOHLCV（始値・高値・安値・終値・出来高）データです。
// 同一リクエスト内で取得された列はOpenTimeが厳密に昇順であることを前提とします。
// 取得後は不変で、取得したインジケーター計算の呼び出しが排他的に所有します。
type Candle struct {
	Symbol    string    // 銘柄シンボル (例: "BTCUSDT")
	Timeframe Timeframe // 時間足 (例: "1h")
	OpenTime  time.Time // このバケットの開始時刻
	Open      float64   // 始値
	High      float64   // 高値
	Low       float64   // 安値
	Close     float64   // 終値
	Volume    float64   // 出来高
}
