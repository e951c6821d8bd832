// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"market_backend/internal/platform/externalapi/binance"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/ratelimiter"
)

// Binance の /api/v3/klines はIPあたり毎分のリクエストウェイト上限があるため、
// その範囲に収まるようクライアント側でも制限します。
const (
	requestsPerMinute = 1200
)

// NewMarket creates a fully configured BinanceMarket with HTTP client and rate limiter.
func NewMarket() *binance.BinanceMarket {
	cfg := binance.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(requestsPerMinute, time.Minute)
	return binance.NewBinanceMarket(cfg, httpClient, limiter)
}
