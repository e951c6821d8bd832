// Package entity はランキングフィーチャーのドメインモデルを定義します。
package entity

// Timeframe はローソク足の集計単位（時間足）です。
// 外部プロバイダのinterval文字列と1:1で対応します。
type Timeframe string

const (
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
	Timeframe1w  Timeframe = "1w"
)

// SupportedTimeframes はランキング対象のすべての時間足を短い順に保持します。
// すべての銘柄はここにあるすべての時間足で評価されます。
var SupportedTimeframes = []Timeframe{
	Timeframe15m,
	Timeframe30m,
	Timeframe1h,
	Timeframe4h,
	Timeframe1d,
	Timeframe1w,
}

// ParseTimeframe は文字列をTimeframeに変換します。
// サポート外の値の場合はfalseを返します。
func ParseTimeframe(s string) (Timeframe, bool) {
	tf := Timeframe(s)
	return tf, tf.Valid()
}

// Valid はサポートされている時間足かどうかを返します。
func (t Timeframe) Valid() bool {
	for _, s := range SupportedTimeframes {
		if t == s {
			return true
		}
	}
	return false
}

// String はプロバイダに渡すinterval文字列を返します。
func (t Timeframe) String() string { return string(t) }
