// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、リクエストID、リクエストログ、CORS設定、
// 疑似ネットワーク遅延など、通知サービスで使用するミドルウェアを含む。
package middleware
