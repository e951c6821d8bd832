package usecase

import (
	"context"
	"fmt"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
)

// allowedCloseCounts は直近終値エンドポイントで許可される件数です。
var allowedCloseCounts = map[int]struct{}{
	3:  {},
	5:  {},
	7:  {},
	10: {},
}

// closesUsecase は過去の終値を取得するユースケースを定義します。
type closesUsecase struct {
	market MarketRepository
}

// NewClosesUsecase はclosesUsecaseの新しいインスタンスを生成します。
func NewClosesUsecase(market MarketRepository) *closesUsecase {
	return &closesUsecase{market: market}
}

// GetPreviousCloses は直近の未確定足を除いた、直前count本の終値を古い順に返します。
// countは{3, 5, 7, 10}のいずれかでなければなりません。
func (u *closesUsecase) GetPreviousCloses(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
	if _, ok := allowedCloseCounts[count]; !ok {
		return nil, fmt.Errorf("%w: count must be one of 3, 5, 7, 10", domain.ErrInvalidRequest)
	}

	// アダプタ側でプロバイダの安全範囲にクランプされる
	candles, err := u.market.FetchCandles(ctx, symbol, tf, count+1)
	if err != nil {
		return nil, err
	}
	if len(candles) < count+1 {
		return nil, fmt.Errorf("%w: got %d candles, need %d", domain.ErrInsufficientData, len(candles), count+1)
	}

	closes := make([]float64, 0, count)
	for _, c := range candles[len(candles)-1-count : len(candles)-1] {
		closes = append(closes, c.Close)
	}
	return closes, nil
}
