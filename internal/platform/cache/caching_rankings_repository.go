// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/feature/rankings/domain/entity"
)

// RankingsBuilder はランキングスナップショットを構築するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（cache）側で定義します。
type RankingsBuilder interface {
	BuildSnapshot(ctx context.Context) (entity.RankingsSnapshot, error)
}

// CachingRankingsRepository decorates a RankingsBuilder with Redis caching.
// It implements the decorator pattern, transparently adding a time-bounded
// cache without modifying the underlying aggregator.
//
// キャッシュに対してfail-openです: Redisが未設定・到達不能・タイムアウトでも
// リクエストは失敗せず、直接集計にフォールバックします。
type CachingRankingsRepository struct {
	inner        RankingsBuilder
	rdb          *redis.Client
	ttl          time.Duration
	namespace    string
	storeTimeout time.Duration
}

// NewCachingRankingsRepository decorates a RankingsBuilder with Redis caching.
// If ttl is 0, it defaults to 60 seconds. If namespace is empty, it uses "rankings".
func NewCachingRankingsRepository(rdb *redis.Client, ttl time.Duration, inner RankingsBuilder, namespace string) *CachingRankingsRepository {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	if namespace == "" {
		namespace = "rankings"
	}
	return &CachingRankingsRepository{
		inner:        inner,
		rdb:          rdb,
		ttl:          ttl,
		namespace:    namespace,
		storeTimeout: 3 * time.Second,
	}
}

// GetRankings はTTL内のキャッシュヒットでスナップショットをそのまま返します。
// ミス時は集計を実行し、結果を固定TTLで保存してから返します。
func (c *CachingRankingsRepository) GetRankings(ctx context.Context) (entity.RankingsSnapshot, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.BuildSnapshot(ctx)
	}

	key := c.cacheKey()

	// 1) Check cache（Redis障害はミスと同じ扱い: fail-open）
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var snap entity.RankingsSnapshot
		if err := json.Unmarshal(b, &snap); err == nil {
			return snap, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to direct aggregation
	snap, err := c.inner.BuildSnapshot(ctx)
	if err != nil {
		return entity.RankingsSnapshot{}, err
	}

	// 3) Store in cache. レスポンスに対してfire-and-forget:
	// 遅い・失敗する書き込みが計算済みのレスポンスを遅延・失敗させてはならない。
	if b, err := json.Marshal(snap); err == nil {
		go c.store(key, b)
	}

	return snap, nil
}

// store は専用のタイムアウト付きコンテキストでスナップショットを保存します。
// 呼び出し元のリクエストコンテキストには依存しません。
func (c *CachingRankingsRepository) store(key string, val []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), c.storeTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		slog.Warn("rankings cache store failed", "key", key, "error", err)
	}
}

// cacheKey は計算種別とパラメータ（時間足セット）で名前空間化したキーを返します。
func (c *CachingRankingsRepository) cacheKey() string {
	tfs := make([]string, 0, len(entity.SupportedTimeframes))
	for _, tf := range entity.SupportedTimeframes {
		tfs = append(tfs, string(tf))
	}
	return fmt.Sprintf("%s:snapshot:%s", c.namespace, strings.Join(tfs, ","))
}
