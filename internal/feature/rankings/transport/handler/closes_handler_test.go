package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"market_backend/internal/feature/rankings/domain"
	"market_backend/internal/feature/rankings/domain/entity"
	"market_backend/internal/feature/rankings/transport/handler"
)

// mockClosesUsecase はClosesUsecaseインターフェースのモック実装です。
type mockClosesUsecase struct {
	GetPreviousClosesFunc func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error)
}

func (m *mockClosesUsecase) GetPreviousCloses(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
	return m.GetPreviousClosesFunc(ctx, symbol, tf, count)
}

// TestClosesHandler_GetClosesHandler はGetClosesHandlerのHTTPリクエスト/レスポンス処理をテストします。
func TestClosesHandler_GetClosesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockFn         func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: all parameters specified",
			url:  "/closes/BTCUSDT?timeframe=4h&count=3",
			mockFn: func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
				assert.Equal(t, "BTCUSDT", symbol)
				assert.Equal(t, entity.Timeframe4h, tf)
				assert.Equal(t, 3, count)
				return []float64{100.5, 101, 102.5}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"BTCUSDT","timeframe":"4h","closes":[100.5,101,102.5]}`,
		},
		{
			name: "success: default parameter values",
			url:  "/closes/ETHUSDT",
			mockFn: func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
				assert.Equal(t, entity.Timeframe1d, tf) // デフォルト値
				assert.Equal(t, 5, count)               // デフォルト値
				return []float64{1, 2, 3, 4, 5}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"ETHUSDT","timeframe":"1d","closes":[1,2,3,4,5]}`,
		},
		{
			name:           "error: unsupported timeframe",
			url:            "/closes/BTCUSDT?timeframe=2h",
			mockFn:         nil, // 呼ばれないはず
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"unsupported timeframe \"2h\""}`,
		},
		{
			name: "error: invalid count rejected by usecase",
			url:  "/closes/BTCUSDT?count=4",
			mockFn: func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
				return nil, fmt.Errorf("%w: count must be one of 3, 5, 7, 10", domain.ErrInvalidRequest)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request parameters: count must be one of 3, 5, 7, 10"}`,
		},
		{
			name: "error: provider failure maps to bad gateway",
			url:  "/closes/BTCUSDT",
			mockFn: func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
				return nil, fmt.Errorf("%w: unreachable", domain.ErrDataUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"market data unavailable: unreachable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockClosesUsecase{
				GetPreviousClosesFunc: func(ctx context.Context, symbol string, tf entity.Timeframe, count int) ([]float64, error) {
					if tt.mockFn == nil {
						t.Error("usecase must not be called")
						return nil, nil
					}
					return tt.mockFn(ctx, symbol, tf, count)
				},
			}

			h := handler.NewClosesHandler(mockUC)

			router := gin.New()
			router.GET("/closes/:symbol", h.GetClosesHandler)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
