package indicator

import (
	"errors"
	"math"
	"testing"
	"time"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
)

// makeCandles は終値と出来高の列からテスト用のローソク足列を生成します。
func makeCandles(closes, volumes []float64) []entity.Candle {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.Candle, len(closes))
	for i := range closes {
		v := 1000.0
		if volumes != nil {
			v = volumes[i]
		}
		out[i] = entity.Candle{
			Symbol:    "BTCUSDT",
			Timeframe: entity.Timeframe1h,
			OpenTime:  base.Add(time.Duration(i) * time.Hour),
			Open:      closes[i],
			High:      closes[i],
			Low:       closes[i],
			Close:     closes[i],
			Volume:    v,
		}
	}
	return out
}

// repeat は同じ値をn個並べたスライスを返します。
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestCompute_InsufficientData は200本未満のローソク足でErrInsufficientDataを返すことを検証します。
func TestCompute_InsufficientData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"one candle", 1},
		{"one short of lookback", RequiredLookback - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compute(makeCandles(repeat(100, tt.n), nil))
			if !errors.Is(err, domain.ErrInsufficientData) {
				t.Errorf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

// TestCompute_ExactLookback はちょうど200本で計算が成功することを検証します。
func TestCompute_ExactLookback(t *testing.T) {
	t.Parallel()

	_, err := Compute(makeCandles(repeat(100, RequiredLookback), nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestCompute_ConstantPrice は定数価格の列でEMAが価格に一致し、
// ボリンジャーバンドが1点に収束することを検証します。
func TestCompute_ConstantPrice(t *testing.T) {
	t.Parallel()

	const p = 123.45
	ind, err := Compute(makeCandles(repeat(p, 250), nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, got := range map[string]float64{
		"ema20":            ind.EMA20,
		"ema50":            ind.EMA50,
		"ema200":           ind.EMA200,
		"prev ema20":       ind.PrevEMA20,
		"prev ema50":       ind.PrevEMA50,
		"bollinger upper":  ind.Bollinger.Upper,
		"bollinger middle": ind.Bollinger.Middle,
		"bollinger lower":  ind.Bollinger.Lower,
	} {
		if !almostEqual(got, p) {
			t.Errorf("%s: expected %v, got %v", name, p, got)
		}
	}
	if ind.VolumeChangePct != 0 {
		t.Errorf("expected zero volume change for constant volume, got %v", ind.VolumeChangePct)
	}
}

// TestCompute_RisingTrend は単調増加の終値列で短期EMAが長期EMAより上にあることを検証します。
func TestCompute_RisingTrend(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	ind, err := Compute(makeCandles(closes, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !(ind.EMA20 > ind.EMA50) {
		t.Errorf("expected ema20 > ema50 in uptrend, got %v <= %v", ind.EMA20, ind.EMA50)
	}
	if !(ind.EMA50 > ind.EMA200) {
		t.Errorf("expected ema50 > ema200 in uptrend, got %v <= %v", ind.EMA50, ind.EMA200)
	}
	// 直近のEMAは1本前より上
	if !(ind.EMA20 > ind.PrevEMA20) {
		t.Errorf("expected rising ema20, got %v <= %v", ind.EMA20, ind.PrevEMA20)
	}
}

// TestCompute_BollingerWindow は既知の直近20本ウィンドウに対するバンド値を検証します。
func TestCompute_BollingerWindow(t *testing.T) {
	t.Parallel()

	// 先頭180本は定数100、直近20本は90と110の交互 → 平均100、母標準偏差10
	closes := repeat(100, 180)
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			closes = append(closes, 90)
		} else {
			closes = append(closes, 110)
		}
	}

	ind, err := Compute(makeCandles(closes, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(ind.Bollinger.Middle, 100) {
		t.Errorf("expected middle 100, got %v", ind.Bollinger.Middle)
	}
	if !almostEqual(ind.Bollinger.Upper, 120) {
		t.Errorf("expected upper 120, got %v", ind.Bollinger.Upper)
	}
	if !almostEqual(ind.Bollinger.Lower, 80) {
		t.Errorf("expected lower 80, got %v", ind.Bollinger.Lower)
	}
}

// TestCompute_VolumeChangePct は出来高変化率の符号と値を検証します。
func TestCompute_VolumeChangePct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lastVolume float64
		expected   float64
	}{
		{"volume spike", 250, 150},
		{"volume drop", 50, -50},
		{"flat volume", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			volumes := repeat(100, 250)
			volumes[len(volumes)-1] = tt.lastVolume

			ind, err := Compute(makeCandles(repeat(100, 250), volumes))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(ind.VolumeChangePct, tt.expected) {
				t.Errorf("expected volume change %v%%, got %v%%", tt.expected, ind.VolumeChangePct)
			}
		})
	}
}

// TestCompute_PrevEMAExcludesLastCandle はPrevEMA20が直近1本を除いた時点の値であることを検証します。
func TestCompute_PrevEMAExcludesLastCandle(t *testing.T) {
	t.Parallel()

	// 249本は定数100、最後の1本だけ200に跳ねる
	closes := repeat(100, 250)
	closes[len(closes)-1] = 200

	ind, err := Compute(makeCandles(closes, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(ind.PrevEMA20, 100) {
		t.Errorf("expected prev ema20 to stay at 100, got %v", ind.PrevEMA20)
	}
	if !(ind.EMA20 > ind.PrevEMA20) {
		t.Errorf("expected last candle to lift ema20 above prev, got %v <= %v", ind.EMA20, ind.PrevEMA20)
	}
}
