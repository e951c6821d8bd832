package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
	"market_backend/internal/feature/rankings/usecase"
	"market_backend/internal/shared/ratelimiter"
)

const (
	// MinKlineLimit / MaxKlineLimit はプロバイダに安全なlimitの範囲です。
	// 範囲外の値は拒否せずに黙ってクランプします（呼び出し元がユーザー入力を
	// そのまま渡すための意図的な寛容さです）。
	MinKlineLimit = 50
	MaxKlineLimit = 1000
)

// symbolPattern は取得前に検証する銘柄シンボルの形式です。
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,20}$`)

// BinanceMarket はBinance公開APIからローソク足を取得するMarketRepository実装です。
// この層ではリトライしません。失敗は呼び出し元へ伝播し、リトライ・縮退・除外の
// 判断は呼び出し元が行います。
type BinanceMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// BinanceMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*BinanceMarket)(nil)

// NewBinanceMarket は指定された設定とHTTPクライアントでBinanceMarketの
// 新しいインスタンスを生成します。limiterはnil可（制限なし）。
func NewBinanceMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *BinanceMarket {
	return &BinanceMarket{cfg: cfg, client: client, limiter: limiter}
}

// FetchCandles はBinanceのklinesエンドポイントからローソク足を取得し、
// OpenTime昇順のdomain.Candleスライスとして返します。
func (b *BinanceMarket) FetchCandles(ctx context.Context, symbol string, tf entity.Timeframe, limit int) ([]entity.Candle, error) {
	// 取得前の検証。ここで弾いたものはネットワークに一切触れない。
	if !symbolPattern.MatchString(symbol) {
		return nil, fmt.Errorf("%w: symbol %q", domain.ErrInvalidRequest, symbol)
	}
	if !tf.Valid() {
		return nil, fmt.Errorf("%w: timeframe %q", domain.ErrInvalidRequest, tf)
	}

	// limitはプロバイダ安全範囲へクランプ
	if limit < MinKlineLimit {
		limit = MinKlineLimit
	}
	if limit > MaxKlineLimit {
		limit = MaxKlineLimit
	}

	if b.limiter != nil {
		b.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	// 時間足文字列はプロバイダのinterval文字列と1:1で対応
	q.Set("interval", tf.String())
	q.Set("limit", strconv.Itoa(limit))

	u := fmt.Sprintf("%s/api/v3/klines?%s", b.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// 未知の銘柄もプロバイダ側から4xxで返るため、DataUnavailableとして扱う
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: binance http %d", domain.ErrDataUnavailable, res.StatusCode)
	}

	// klinesは [openTime, open, high, low, close, volume, ...] の配列の配列
	var rows [][]any
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decode klines: %v", domain.ErrDataUnavailable, err)
	}

	candles := make([]entity.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("%w: kline %d: %v", domain.ErrDataUnavailable, i, err)
		}
		c.Symbol = symbol
		c.Timeframe = tf

		// OpenTimeの厳密な昇順を保証する（下流の指標計算の前提）
		if i > 0 && !c.OpenTime.After(candles[i-1].OpenTime) {
			return nil, fmt.Errorf("%w: klines not strictly ascending at %d", domain.ErrDataUnavailable, i)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// parseKline は1行のkline配列をCandleに変換します。
func parseKline(row []any) (entity.Candle, error) {
	if len(row) < 6 {
		return entity.Candle{}, fmt.Errorf("short kline row: %d fields", len(row))
	}

	// openTimeはミリ秒エポックの数値
	ot, ok := row[0].(float64)
	if !ok {
		return entity.Candle{}, fmt.Errorf("openTime %v is not a number", row[0])
	}

	// 始値をパース
	o, err := parsePrice(row[1], "open")
	if err != nil {
		return entity.Candle{}, err
	}
	// 高値をパース
	h, err := parsePrice(row[2], "high")
	if err != nil {
		return entity.Candle{}, err
	}
	// 安値をパース
	l, err := parsePrice(row[3], "low")
	if err != nil {
		return entity.Candle{}, err
	}
	// 終値をパース
	c, err := parsePrice(row[4], "close")
	if err != nil {
		return entity.Candle{}, err
	}
	// 出来高をパース
	v, err := parsePrice(row[5], "volume")
	if err != nil {
		return entity.Candle{}, err
	}

	return entity.Candle{
		OpenTime: time.UnixMilli(int64(ot)).UTC(),
		Open:     o,
		High:     h,
		Low:      l,
		Close:    c,
		Volume:   v,
	}, nil
}

// parsePrice は文字列でエンコードされた数値フィールドをパースします。
func parsePrice(v any, field string) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%s %v is not a string", field, v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return f, nil
}
