package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック発生時にログへ出力し、success=falseのレスポンスエンベロープで500を返す。
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(c.Request.Context(), "パニックが発生しました",
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("request_id", GetRequestID(c)),
					slog.Any("panic", r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success":   false,
					"message":   "内部サーバーエラーが発生しました",
					"data":      nil,
					"timestamp": time.Now().UTC().Format(TimestampLayout),
				})
			}
		}()
		c.Next()
	}
}

// TimestampLayout はレスポンスエンベロープのtimestampに使うISO-8601形式（ミリ秒、UTC）。
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
