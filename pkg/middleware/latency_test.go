package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestLatency はLatencyミドルウェアを検証する。
func TestLatency(t *testing.T) {
	t.Parallel()

	t.Run("遅延0の場合は待機せずに処理されること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Latency(0, 0))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		start := time.Now()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("処理時間 = %v, 待機なしを期待", elapsed)
		}
	})

	t.Run("base以上base+jitter未満の時間待機すること", func(t *testing.T) {
		t.Parallel()

		const base, jitter = 30 * time.Millisecond, 20 * time.Millisecond

		router := gin.New()
		router.Use(Latency(base, jitter))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		start := time.Now()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		elapsed := time.Since(start)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if elapsed < base {
			t.Errorf("処理時間 = %v, want >= %v", elapsed, base)
		}
	})

	t.Run("待機中にキャンセルされた場合ハンドラーが実行されないこと", func(t *testing.T) {
		t.Parallel()

		called := false
		router := gin.New()
		router.Use(Latency(5*time.Second, 0))
		router.GET("/test", func(c *gin.Context) {
			called = true
			c.Status(http.StatusOK)
		})

		ctx, cancel := context.WithCancel(t.Context())
		req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
		time.AfterFunc(10*time.Millisecond, cancel)

		start := time.Now()
		router.ServeHTTP(httptest.NewRecorder(), req)

		if called {
			t.Error("キャンセル後にハンドラーが実行された")
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("処理時間 = %v, キャンセルで即座に戻ることを期待", elapsed)
		}
	})
}
