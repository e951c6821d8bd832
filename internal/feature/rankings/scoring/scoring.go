// Package scoring はIndicatorSetを[0,100]の合成スコアとハイライトタグに変換します。
package scoring

import (
	"math"

	"market_backend/internal/feature/rankings/domain/entity"
)

// Config はスコアリングの重みと閾値の設定です。
// デプロイごとに差し替え・テストできるよう、モジュールレベル定数ではなく
// Modelの構築時に明示的に渡します。
type Config struct {
	// TrendWeight / VolatilityWeight / VolumeWeight は3つのサブスコアの重みです。
	// 合計1.0を想定します。
	TrendWeight      float64
	VolatilityWeight float64
	VolumeWeight     float64

	// SqueezeThreshold はバンド幅比率 (upper-lower)/middle がこれ未満のとき
	// band_squeezeタグを付与する閾値です。
	SqueezeThreshold float64
	// BreakoutThreshold はバンド幅比率がこれを超えるときband_breakoutタグを
	// 付与する閾値です。
	BreakoutThreshold float64
	// VolumeSpikeThreshold は出来高変化率（%）がこれ以上のときvolume_spikeタグを
	// 付与する閾値です。
	VolumeSpikeThreshold float64
}

// DefaultConfig は標準の重み（トレンド0.5, ボラティリティ0.3, 出来高0.2）と
// 閾値を返します。
func DefaultConfig() Config {
	return Config{
		TrendWeight:          0.5,
		VolatilityWeight:     0.3,
		VolumeWeight:         0.2,
		SqueezeThreshold:     0.02,
		BreakoutThreshold:    0.10,
		VolumeSpikeThreshold: 100,
	}
}

// Model はIndicatorSetと現在価格から合成スコアを計算するスコアリングモデルです。
// 同一入力は常に同一出力を返す純粋関数です（スナップショット回帰テストの前提）。
type Model struct {
	cfg Config
}

// NewModel は指定された設定でModelの新しいインスタンスを生成します。
// 重みがすべて0の場合はDefaultConfigを使用します。
func NewModel(cfg Config) *Model {
	if cfg.TrendWeight == 0 && cfg.VolatilityWeight == 0 && cfg.VolumeWeight == 0 {
		cfg = DefaultConfig()
	}
	return &Model{cfg: cfg}
}

// Score は[0,100]の合成スコアと、順序付きのハイライトタグを返します。
//
// 3つのサブスコアをそれぞれ独立に[0,100]へクランプしてから重み付き合算します。
// 1つの指標の暴走が合成値を支配しないようにするためです。
// タグは閾値判定から独立に導出され、数値スコアには影響しません。
func (m *Model) Score(ind entity.IndicatorSet, price float64) (float64, []entity.HighlightTag) {
	trend := clamp(m.trendScore(ind, price))
	volPos, bandTags := m.volatilityScore(ind, price)
	volPos = clamp(volPos)
	volConf, volTags := m.volumeScore(ind)
	volConf = clamp(volConf)

	composite := m.cfg.TrendWeight*trend +
		m.cfg.VolatilityWeight*volPos +
		m.cfg.VolumeWeight*volConf
	composite = clamp(math.Round(composite))

	tags := crossTags(ind)
	tags = append(tags, bandTags...)
	tags = append(tags, volTags...)
	return composite, tags
}

// trendScore はEMAの並び順から導出します。
// price > ema20 > ema50 > ema200 の強気スタックで満点、完全に反転で0点、
// 3つのペア順序のうちいくつ成立しているかで線形補間します。
func (m *Model) trendScore(ind entity.IndicatorSet, price float64) float64 {
	held := 0
	if price > ind.EMA20 {
		held++
	}
	if ind.EMA20 > ind.EMA50 {
		held++
	}
	if ind.EMA50 > ind.EMA200 {
		held++
	}
	return float64(held) / 3 * 100
}

// volatilityScore は現在価格がボリンジャーレンジのどこにあるかをパーセンタイルで
// 表します。バンド外はクランプされます。バンド幅の比率が閾値を下回る/上回る場合は
// band_squeeze / band_breakoutタグを付与します。
func (m *Model) volatilityScore(ind entity.IndicatorSet, price float64) (float64, []entity.HighlightTag) {
	width := ind.Bollinger.Upper - ind.Bollinger.Lower

	pos := 50.0 // バンドが1点に収束している場合は中立
	if width > 0 {
		pos = (price - ind.Bollinger.Lower) / width * 100
	}

	var tags []entity.HighlightTag
	if ind.Bollinger.Middle > 0 {
		ratio := width / ind.Bollinger.Middle
		switch {
		case ratio < m.cfg.SqueezeThreshold:
			tags = append(tags, entity.TagBandSqueeze)
		case ratio > m.cfg.BreakoutThreshold:
			tags = append(tags, entity.TagBandBreakout)
		}
	}
	return pos, tags
}

// volumeScore は出来高変化率を[0,100]へ単調写像します。
// トレンド方向（EMA20とEMA50の位置関係）と一致する出来高拡大を加点します。
func (m *Model) volumeScore(ind entity.IndicatorSet) (float64, []entity.HighlightTag) {
	direction := 1.0
	if ind.EMA20 < ind.EMA50 {
		direction = -1.0
	}
	score := 50 + direction*ind.VolumeChangePct/2

	var tags []entity.HighlightTag
	if ind.VolumeChangePct >= m.cfg.VolumeSpikeThreshold {
		tags = append(tags, entity.TagVolumeSpike)
	}
	return score, tags
}

// crossTags は1本前と現在のEMA20/EMA50の位置関係からクロスを検出します。
func crossTags(ind entity.IndicatorSet) []entity.HighlightTag {
	var tags []entity.HighlightTag
	if ind.PrevEMA20 <= ind.PrevEMA50 && ind.EMA20 > ind.EMA50 {
		tags = append(tags, entity.TagGoldenCross)
	}
	if ind.PrevEMA20 >= ind.PrevEMA50 && ind.EMA20 < ind.EMA50 {
		tags = append(tags, entity.TagDeathCross)
	}
	return tags
}

// clamp は値を[0,100]に収めます。
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
