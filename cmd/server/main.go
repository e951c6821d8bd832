package main

import (
	"log"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/di"
	"market_backend/internal/app/router"
	"market_backend/internal/feature/rankings/scoring"
	rankingshandler "market_backend/internal/feature/rankings/transport/handler"
	rankingsusecase "market_backend/internal/feature/rankings/usecase"
	symbollistadapters "market_backend/internal/feature/symbollist/adapters"
	symbollisthandler "market_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "market_backend/internal/feature/symbollist/usecase"
	"market_backend/internal/platform/cache"
	infradb "market_backend/internal/platform/db"
	infraredis "market_backend/internal/platform/redis"
)

func main() {
	// .env はローカル開発用。なければ環境変数をそのまま使う
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	market := di.NewMarket()

	// Usecase
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)
	scorer := scoring.NewModel(scoring.DefaultConfig())
	rankingsUC := rankingsusecase.NewRankingsUsecase(market, symbolUC, scorer)
	closesUC := rankingsusecase.NewClosesUsecase(market)

	// Redisキャッシュでラップ
	ttl := cache.SnapshotTTL()
	cachedRankings := cache.NewCachingRankingsRepository(rdb, ttl, rankingsUC, "rankings")

	// Handler
	rankingsH := rankingshandler.NewRankingsHandler(cachedRankings, ttl)
	closesH := rankingshandler.NewClosesHandler(closesUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)

	// ルータ生成
	router := router.NewRouter(rankingsH, closesH, symbolH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
