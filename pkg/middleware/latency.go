package middleware

import (
	"math/rand/v2"
	"time"

	"github.com/gin-gonic/gin"
)

// Latency はネットワーク遅延を模擬するGinミドルウェアを返す。
//
// 各リクエストの処理前にbase以上base+jitter未満の時間だけ待機する。
// 待機中にリクエストがキャンセルされた場合は処理を中断し、レスポンスを返さない。
// baseとjitterがともに0の場合は何もしない。
func Latency(base, jitter time.Duration) gin.HandlerFunc {
	if base <= 0 && jitter <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		delay := max(base, 0)
		if jitter > 0 {
			delay += rand.N(jitter)
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}
