// Package indicator はローソク足列からテクニカル指標を計算する純粋関数を提供します。
// ネットワーク呼び出しや与えられたウィンドウ外のデータ参照は一切行いません。
package indicator

import (
	"fmt"
	"math"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
)

const (
	// EMAShortPeriod / EMAMidPeriod / EMALongPeriod はEMAの期間です。
	EMAShortPeriod = 20
	EMAMidPeriod   = 50
	EMALongPeriod  = 200

	// BollingerPeriod はボリンジャーバンドのSMA期間、BollingerK はσの係数です。
	BollingerPeriod = 20
	BollingerK      = 2.0

	// VolumeWindow は出来高変化率の比較対象となる直前本数です。
	VolumeWindow = 20

	// RequiredLookback は最長のルックバック（EMA200）です。
	// これ未満の本数で計算を試みるとErrInsufficientDataで失敗します。
	RequiredLookback = EMALongPeriod
)

// Compute はローソク足列からIndicatorSetを計算します。
// len(candles) < RequiredLookback の場合はErrInsufficientDataを返します。
// 足りないまま計算して短いEMAをEMA200と偽るより、明示的に失敗する方を選びます。
func Compute(candles []entity.Candle) (entity.IndicatorSet, error) {
	if len(candles) < RequiredLookback {
		return entity.IndicatorSet{}, fmt.Errorf("%w: got %d candles, need at least %d",
			domain.ErrInsufficientData, len(candles), RequiredLookback)
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	ema20, prev20 := ema(closes, EMAShortPeriod)
	ema50, prev50 := ema(closes, EMAMidPeriod)
	ema200, _ := ema(closes, EMALongPeriod)

	return entity.IndicatorSet{
		EMA20:           ema20,
		EMA50:           ema50,
		EMA200:          ema200,
		PrevEMA20:       prev20,
		PrevEMA50:       prev50,
		Bollinger:       bollinger(closes, BollingerPeriod, BollingerK),
		VolumeChangePct: volumeChangePct(candles, VolumeWindow),
	}, nil
}

// ema は指数移動平均の最終値と、1本前時点での値を返します。
// 平滑化係数 α = 2/(n+1)。最初のn本の単純移動平均をシードとして、
// 以降 ema[i] = close[i]*α + ema[i-1]*(1-α) の漸化式で更新します。
// 中間値は保持しません。
func ema(series []float64, period int) (current, previous float64) {
	alpha := 2.0 / float64(period+1)

	var sum float64
	for _, v := range series[:period] {
		sum += v
	}
	current = sum / float64(period)
	previous = current

	for i := period; i < len(series); i++ {
		previous = current
		current = series[i]*alpha + current*(1-alpha)
	}
	return current, previous
}

// bollinger は直近period本の終値から中央バンド（SMA）と上下バンド（±k×σ）を計算します。
// σは実装間の決定性のため母集団標準偏差（バイアスあり推定量）を使用します。
func bollinger(closes []float64, period int, k float64) entity.Bollinger {
	window := closes[len(closes)-period:]

	var sum float64
	for _, v := range window {
		sum += v
	}
	middle := sum / float64(period)

	var sq float64
	for _, v := range window {
		d := v - middle
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(period))

	return entity.Bollinger{
		Upper:  middle + k*sd,
		Middle: middle,
		Lower:  middle - k*sd,
	}
}

// volumeChangePct は直近ローソク足の出来高と、その直前window本の平均出来高との
// 変化率（%）を返します。符号付きでクランプしません。平均が0の場合は0を返します。
func volumeChangePct(candles []entity.Candle, window int) float64 {
	last := candles[len(candles)-1].Volume
	prev := candles[len(candles)-1-window : len(candles)-1]

	var sum float64
	for _, c := range prev {
		sum += c.Volume
	}
	mean := sum / float64(window)
	if mean == 0 {
		return 0
	}
	return (last - mean) / mean * 100
}
