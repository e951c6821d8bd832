package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
	"market_backend/internal/feature/rankings/transport/http/dto"
)

// ClosesUsecase は過去の終値を取得するユースケースインターフェースです。
type ClosesUsecase interface {
	GetPreviousCloses(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error)
}

// ClosesHandler は直近終値のHTTPリクエストを処理します。
type ClosesHandler struct {
	uc ClosesUsecase
}

// NewClosesHandler は指定されたusecaseでClosesHandlerの新しいインスタンスを生成します。
func NewClosesHandler(uc ClosesUsecase) *ClosesHandler {
	return &ClosesHandler{uc: uc}
}

// GetClosesHandler は銘柄の直近N本の終値を返します。過去比較の表示に使われます。
// countは{3, 5, 7, 10}のいずれかです。
//
// エンドポイント例:
// GET /closes/BTCUSDT?timeframe=1d&count=5
func (h *ClosesHandler) GetClosesHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	tfParam := c.DefaultQuery("timeframe", string(entity.Timeframe1d))
	tf, ok := entity.ParseTimeframe(tfParam)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("unsupported timeframe %q", tfParam)})
		return
	}

	countStr := c.DefaultQuery("count", "5")
	// 変換エラーは0になり、usecase側の許可リスト検証で拒否される
	count, _ := strconv.Atoi(countStr)

	closes, err := h.uc.GetPreviousCloses(c.Request.Context(), symbol, tf, count)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ClosesResponse{
		Symbol:    symbol,
		Timeframe: string(tf),
		Closes:    closes,
	})
}
