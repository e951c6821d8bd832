// Package handler はrankingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
	"market_backend/internal/feature/rankings/transport/http/dto"
)

// RankingsProvider はランキングスナップショットを取得するインターフェースです。
// キャッシュ層でラップされたユースケースが渡されます。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RankingsProvider interface {
	GetRankings(ctx context.Context) (entity.RankingsSnapshot, error)
}

// RankingsHandler はランキングのHTTPリクエストを処理します。
type RankingsHandler struct {
	provider RankingsProvider
	maxAge   int // Cache-Controlのs-maxage（秒）
}

// NewRankingsHandler は指定されたプロバイダとキャッシュTTLで
// RankingsHandlerの新しいインスタンスを生成します。
func NewRankingsHandler(provider RankingsProvider, ttl time.Duration) *RankingsHandler {
	return &RankingsHandler{provider: provider, maxAge: int(ttl.Seconds())}
}

// GetRankingsHandler は全時間足のランキングスナップショット、または
// timeframeクエリで指定された単一時間足のスライスをJSONで返します。
// どちらも同じスナップショットから提供されるため、時間足の切り替えで
// 再取得は発生しません。
//
// エンドポイント例:
// GET /rankings
// GET /rankings?timeframe=1h
func (h *RankingsHandler) GetRankingsHandler(c *gin.Context) {
	tfParam := c.Query("timeframe")
	var tf entity.Timeframe
	if tfParam != "" {
		var ok bool
		if tf, ok = entity.ParseTimeframe(tfParam); !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("unsupported timeframe %q", tfParam)})
			return
		}
	}

	snap, err := h.provider.GetRankings(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	// エッジ層がエンジンの関与なしに負荷を減らせるよう鮮度を通知する
	c.Header("Cache-Control", fmt.Sprintf("public, s-maxage=%d", h.maxAge))

	generatedAt := snap.GeneratedAt.UTC().Format(time.RFC3339)
	if tfParam != "" {
		c.JSON(http.StatusOK, dto.TimeframeRankingsResponse{
			GeneratedAt: generatedAt,
			Timeframe:   string(tf),
			Entries:     toEntryResponses(snap.Timeframes[tf]),
		})
		return
	}

	out := dto.RankingsSnapshotResponse{
		GeneratedAt: generatedAt,
		Timeframes:  make(map[string][]dto.RankingEntryResponse, len(snap.Timeframes)),
	}
	for tf, entries := range snap.Timeframes {
		out.Timeframes[string(tf)] = toEntryResponses(entries)
	}
	c.JSON(http.StatusOK, out)
}

// toEntryResponses はドメインのランキングエントリをレスポンスDTOへ変換します。
func toEntryResponses(entries []entity.RankingEntry) []dto.RankingEntryResponse {
	out := make([]dto.RankingEntryResponse, 0, len(entries))
	for _, e := range entries {
		highlights := make([]string, 0, len(e.Highlights))
		for _, tag := range e.Highlights {
			highlights = append(highlights, string(tag))
		}
		out = append(out, dto.RankingEntryResponse{
			Symbol:    e.Symbol,
			Timeframe: string(e.Timeframe),
			Rank:      e.Rank,
			Score:     e.Score,
			Indicators: dto.IndicatorSetResponse{
				EMA20:  e.Indicators.EMA20,
				EMA50:  e.Indicators.EMA50,
				EMA200: e.Indicators.EMA200,
				Bollinger: dto.BollingerResponse{
					Upper:  e.Indicators.Bollinger.Upper,
					Middle: e.Indicators.Bollinger.Middle,
					Lower:  e.Indicators.Bollinger.Lower,
				},
				VolumeChangePct: e.Indicators.VolumeChangePct,
			},
			Highlights: highlights,
		})
	}
	return out
}
