// Package usecase はランキング計算のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/rankings/domain/entity"
	"market_backend/internal/feature/rankings/indicator"
)

const (
	// DefaultCandleLimit は1回の取得で要求するローソク足の本数です。
	// 最長ルックバック（EMA200）に余裕を持たせています。
	DefaultCandleLimit = 250

	// DefaultMaxConcurrent は同時に実行する(銘柄, 時間足)タスク数の上限です。
	// 銘柄数×時間足数のバーストからプロバイダを保護します。
	DefaultMaxConcurrent = 8
)

// MarketRepository はローソク足データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	FetchCandles(ctx context.Context, symbol string, timeframe entity.Timeframe, limit int) ([]entity.Candle, error)
}

// SymbolSource はランキング対象となる銘柄ユニバースを提供します。
type SymbolSource interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// Scorer はIndicatorSetと現在価格からスコアとハイライトを計算します。
type Scorer interface {
	Score(ind entity.IndicatorSet, price float64) (float64, []entity.HighlightTag)
}

// RankingsUsecase は全銘柄×全時間足のランキングスナップショットを構築します。
type RankingsUsecase struct {
	market        MarketRepository
	symbols       SymbolSource
	scorer        Scorer
	candleLimit   int
	maxConcurrent int
}

// NewRankingsUsecase はRankingsUsecaseの新しいインスタンスを生成します。
func NewRankingsUsecase(market MarketRepository, symbols SymbolSource, scorer Scorer) *RankingsUsecase {
	return &RankingsUsecase{
		market:        market,
		symbols:       symbols,
		scorer:        scorer,
		candleLimit:   DefaultCandleLimit,
		maxConcurrent: DefaultMaxConcurrent,
	}
}

// BuildSnapshot は1回の論理リクエストとして全時間足のランキングを構築します。
//
// (銘柄, 時間足)ペアごとに1タスクを並行実行し、可変状態を共有しません。
// 個々の銘柄の失敗（データ取得不可・本数不足）はその時間足から除外するだけで、
// 兄弟タスクを中断しません。部分的な結果も有効な結果です。
// すべてのタスクが完了（成功または除外）するまで、どの時間足も公開されません。
// ctxがキャンセルされた場合はスナップショットを返さずエラーで終了します
// （キャンセルされた計算が共有キャッシュへ漏れないように）。
func (u *RankingsUsecase) BuildSnapshot(ctx context.Context) (entity.RankingsSnapshot, error) {
	codes, err := u.symbols.ListActiveCodes(ctx)
	if err != nil {
		return entity.RankingsSnapshot{}, fmt.Errorf("list symbol universe: %w", err)
	}

	type slot struct {
		timeframe entity.Timeframe
		entry     entity.RankingEntry
		ok        bool
	}
	// タスクごとに専用スロットへ書き込むため、ロックは不要
	slots := make([]slot, len(codes)*len(entity.SupportedTimeframes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.maxConcurrent)

	idx := 0
	for _, tf := range entity.SupportedTimeframes {
		for _, code := range codes {
			i, tf, code := idx, tf, code
			idx++
			g.Go(func() error {
				entry, err := u.evaluateOne(gctx, code, tf)
				if err != nil {
					if gctx.Err() != nil {
						// リクエスト全体のキャンセル。協調的に中断する。
						return gctx.Err()
					}
					// 除外理由は観測可能性のためすべて記録する
					slog.Warn("symbol excluded from ranking",
						"symbol", code, "timeframe", tf, "reason", err)
					return nil
				}
				slots[i] = slot{timeframe: tf, entry: entry, ok: true}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return entity.RankingsSnapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return entity.RankingsSnapshot{}, err
	}

	snap := entity.RankingsSnapshot{
		GeneratedAt: time.Now().UTC(),
		Timeframes:  make(map[entity.Timeframe][]entity.RankingEntry, len(entity.SupportedTimeframes)),
	}
	for _, tf := range entity.SupportedTimeframes {
		// 空の時間足も「欠落」ではなく「空」として必ず存在させる
		entries := make([]entity.RankingEntry, 0, len(codes))
		for _, s := range slots {
			if s.ok && s.timeframe == tf {
				entries = append(entries, s.entry)
			}
		}
		rank(entries)
		snap.Timeframes[tf] = entries
	}
	return snap, nil
}

// evaluateOne は1つの(銘柄, 時間足)ペアを完全に独立して評価します。
// 他の時間足のローソク足と混在させることはありません。
func (u *RankingsUsecase) evaluateOne(ctx context.Context, symbol string, tf entity.Timeframe) (entity.RankingEntry, error) {
	candles, err := u.market.FetchCandles(ctx, symbol, tf, u.candleLimit)
	if err != nil {
		return entity.RankingEntry{}, err
	}

	ind, err := indicator.Compute(candles)
	if err != nil {
		return entity.RankingEntry{}, err
	}

	price := candles[len(candles)-1].Close
	score, highlights := u.scorer.Score(ind, price)

	return entity.RankingEntry{
		Symbol:     symbol,
		Timeframe:  tf,
		Score:      score,
		Indicators: ind,
		Highlights: highlights,
	}, nil
}

// rank はスコア降順（同点は銘柄名昇順）でソートし、1始まりの密な順位を振ります。
func rank(entries []entity.RankingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
