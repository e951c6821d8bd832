package cache

import (
	"os"
	"strconv"
	"time"
)

// DefaultSnapshotTTL はランキングスナップショットの既定のキャッシュ期間です。
const DefaultSnapshotTTL = 60 * time.Second

// SnapshotTTL は環境変数RANKINGS_CACHE_TTL（秒）からスナップショットの
// キャッシュ期間を返します。未設定・不正・非正の値の場合はデフォルトを使います。
func SnapshotTTL() time.Duration {
	raw := os.Getenv("RANKINGS_CACHE_TTL")
	if raw == "" {
		return DefaultSnapshotTTL
	}

	sec, err := strconv.Atoi(raw)
	if err != nil || sec <= 0 {
		return DefaultSnapshotTTL
	}
	return time.Duration(sec) * time.Second
}
