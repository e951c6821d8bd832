package router

import (
	"os"

	rankingshandler "market_backend/internal/feature/rankings/transport/handler"
	symbollisthandler "market_backend/internal/feature/symbollist/transport/handler"
	"market_backend/internal/platform/http/handler"
	jwtmw "market_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(rankings *rankingshandler.RankingsHandler, closes *rankingshandler.ClosesHandler,
	symbol *symbollisthandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// APIルート
	// r.Group("/") でルートグループを作成
	api := r.Group("/")
	// JWT_SECRET が設定されている場合のみ jwtmw.AuthRequired() を適用
	// → 公開デプロイではリクエストヘッダーに JWT が必要になる
	if os.Getenv(jwtmw.EnvKeyJWTSecret) != "" {
		api.Use(jwtmw.AuthRequired())
	}
	{
		api.GET("/rankings", rankings.GetRankingsHandler)
		api.GET("/closes/:symbol", closes.GetClosesHandler)
		api.GET("/symbols", symbol.List)
	}

	return r
}
