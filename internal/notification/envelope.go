package notification

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/notice/pkg/middleware"
)

// envelope はすべてのAPIレスポンスに共通する形式。
type envelope struct {
	// Success は処理が成功したかを表す。
	Success bool `json:"success"`
	// Message は人間向けのメッセージ。
	Message string `json:"message"`
	// Data はレスポンス本体。失敗時はnull。
	Data any `json:"data"`
	// Timestamp はレスポンス生成時刻（ISO-8601、ミリ秒、UTC）。
	Timestamp string `json:"timestamp"`
}

// respond はエンベロープで包んだJSONレスポンスを書き込む。
func respond(c *gin.Context, status int, success bool, message string, data any) {
	c.JSON(status, envelope{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(middleware.TimestampLayout),
	})
}

// succeed は成功レスポンスを書き込む。
func succeed(c *gin.Context, status int, message string, data any) {
	respond(c, status, true, message, data)
}

// fail は失敗レスポンスを書き込む。dataは常にnull。
func fail(c *gin.Context, status int, message string) {
	respond(c, status, false, message, nil)
}
