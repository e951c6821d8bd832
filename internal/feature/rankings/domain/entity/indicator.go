package entity

// Bollinger はボリンジャーバンド（20期間, ±2σ）の3本の値です。
type Bollinger struct {
	Upper  float64 // 上限バンド = Middle + 2σ
	Middle float64 // 中央バンド = 20期間単純移動平均
	Lower  float64 // 下限バンド = Middle - 2σ
}

// IndicatorSet は1つの(銘柄, 時間足)ペアに対して計算されたテクニカル指標の集合です。
// 毎リクエスト再計算される派生値であり、永続化されません（真実の源泉はローソク足です）。
//
// PrevEMA20/PrevEMA50 は1本前のローソク足時点での同じEMAです。
// クロス判定（ゴールデンクロス等）をIndicatorSetと現在価格だけの
// 純粋関数として行うために保持します。
type IndicatorSet struct {
	EMA20     float64
	EMA50     float64
	EMA200    float64
	PrevEMA20 float64
	PrevEMA50 float64
	Bollinger Bollinger
	// VolumeChangePct は直近ローソク足の出来高と、その直前20本の平均出来高との
	// 変化率（%）です。符号付きでクランプされません。
	VolumeChangePct float64
}
