// Command seed はランキング対象となるペアのユニバースをMySQLに投入します。
// SEED_SYMBOLS 環境変数（例: "BTCUSDT:Bitcoin,ETHUSDT:Ethereum"）が
// 設定されていればそれを使い、なければ組み込みのデフォルトを使います。
package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"market_backend/internal/feature/symbollist/domain/entity"
	infradb "market_backend/internal/platform/db"
)

// デフォルトのユニバース。運用では SEED_SYMBOLS で上書きします。
var defaultPairs = []entity.Symbol{
	{Code: "BTCUSDT", Name: "Bitcoin", QuoteAsset: "USDT", IsActive: true, SortKey: 1},
	{Code: "ETHUSDT", Name: "Ethereum", QuoteAsset: "USDT", IsActive: true, SortKey: 2},
	{Code: "BNBUSDT", Name: "BNB", QuoteAsset: "USDT", IsActive: true, SortKey: 3},
	{Code: "SOLUSDT", Name: "Solana", QuoteAsset: "USDT", IsActive: true, SortKey: 4},
	{Code: "XRPUSDT", Name: "XRP", QuoteAsset: "USDT", IsActive: true, SortKey: 5},
	{Code: "ADAUSDT", Name: "Cardano", QuoteAsset: "USDT", IsActive: true, SortKey: 6},
	{Code: "DOGEUSDT", Name: "Dogecoin", QuoteAsset: "USDT", IsActive: true, SortKey: 7},
	{Code: "AVAXUSDT", Name: "Avalanche", QuoteAsset: "USDT", IsActive: true, SortKey: 8},
	{Code: "DOTUSDT", Name: "Polkadot", QuoteAsset: "USDT", IsActive: true, SortKey: 9},
	{Code: "LINKUSDT", Name: "Chainlink", QuoteAsset: "USDT", IsActive: true, SortKey: 10},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	db := infradb.OpenDB()

	pairs := defaultPairs
	if env := os.Getenv("SEED_SYMBOLS"); env != "" {
		pairs = parsePairs(env)
	}
	if len(pairs) == 0 {
		log.Fatal("no symbols to seed")
	}

	// code をキーにupsert。既存行は名前と表示順のみ更新し、
	// 運用で無効化したペアを勝手に再度有効化しないようにする
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "quote_asset", "sort_key"}),
	}).Create(&pairs).Error
	if err != nil {
		log.Fatal("failed to seed symbols:", err)
	}

	log.Printf("seeded %d symbols", len(pairs))
}

// parsePairs は "CODE:Name,CODE:Name" 形式の文字列をパースします。
// Name を省略した場合は Code がそのまま使われます。
func parsePairs(s string) []entity.Symbol {
	var pairs []entity.Symbol
	for i, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, name, ok := strings.Cut(item, ":")
		if !ok || name == "" {
			name = code
		}
		quote := ""
		for _, q := range []string{"USDT", "USDC", "BTC", "ETH"} {
			if strings.HasSuffix(code, q) {
				quote = q
				break
			}
		}
		pairs = append(pairs, entity.Symbol{
			Code:       code,
			Name:       name,
			QuoteAsset: quote,
			IsActive:   true,
			SortKey:    i + 1,
		})
	}
	return pairs
}
