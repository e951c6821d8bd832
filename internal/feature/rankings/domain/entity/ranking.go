package entity

import "time"

// HighlightTag はスコアの背景を説明する定性的なラベルです。
// タグは数値スコアには一切影響しません（注釈のみ）。
type HighlightTag string

const (
	// TagGoldenCross はEMA20が直近1本でEMA50を上抜けしたことを示します。
	TagGoldenCross HighlightTag = "golden_cross"
	// TagDeathCross はEMA20が直近1本でEMA50を下抜けしたことを示します。
	TagDeathCross HighlightTag = "death_cross"
	// TagBandSqueeze はボリンジャーバンド幅が閾値未満に収縮していることを示します。
	TagBandSqueeze HighlightTag = "band_squeeze"
	// TagBandBreakout はボリンジャーバンド幅が閾値を超えて拡大していることを示します。
	TagBandBreakout HighlightTag = "band_breakout"
	// TagVolumeSpike は出来高が直前平均に対して急増していることを示します。
	TagVolumeSpike HighlightTag = "volume_spike"
)

// RankingEntry は1つの時間足内における1銘柄のランキング結果です。
type RankingEntry struct {
	Symbol    string
	Timeframe Timeframe
	// Rank は1始まりの密な順位です（欠番なし、同点は銘柄名昇順）。
	Rank       int
	Score      float64 // [0,100] の整数値に丸められた合成スコア
	Indicators IndicatorSet
	Highlights []HighlightTag
}

// RankingsSnapshot は1回の論理リクエストで取得したローソク足から構築した
// 全時間足分のランキングです。UIは再取得なしに時間足を切り替えられます。
//
// サポートされるすべての時間足がキーとして必ず存在します。
// データが1件も得られなかった時間足は空のスライスになります
// （「まだデータがない」と「サポート外」を呼び出し側が区別できるように）。
type RankingsSnapshot struct {
	GeneratedAt time.Time
	Timeframes  map[Timeframe][]RankingEntry
}
