// Package httpclient は通知APIを呼び出すHTTPクライアントを提供する。
//
// H5フロントエンドやテストハーネスなど、サーバーの外側から通知APIを利用する
// 側のためのクライアントライブラリであり、サーバー自身はこのパッケージを使わない。
//
// レスポンスエンベロープ（success, message, data, timestamp）を解釈し、
// dataのみを呼び出し側の値へデシリアライズする。success=falseの応答は
// ErrUnsuccessfulをラップしたエラーとして返す。
package httpclient
