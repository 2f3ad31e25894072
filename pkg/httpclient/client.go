package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnsuccessful はサーバーがsuccess=falseのエンベロープを返したことを表す。
var ErrUnsuccessful = errors.New("APIが失敗を返しました")

// Envelope はAPIレスポンスの共通形式。
type Envelope struct {
	// Success は処理が成功したかを表す。
	Success bool `json:"success"`
	// Message は人間向けのメッセージ。
	Message string `json:"message"`
	// Data はレスポンス本体。
	Data json.RawMessage `json:"data"`
	// Timestamp はレスポンス生成時刻（ISO-8601、ミリ秒、UTC）。
	Timestamp string `json:"timestamp"`
}

// APIError はsuccess=falseの応答から生成されるエラー。
// errors.Is(err, ErrUnsuccessful)で判定できる。
type APIError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Message はエンベロープのメッセージ。
	Message string
}

// Error はエラーメッセージを返す。
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status=%d, message=%s", ErrUnsuccessful, e.StatusCode, e.Message)
}

// Unwrap はErrUnsuccessfulを返す。
func (e *APIError) Unwrap() error {
	return ErrUnsuccessful
}

// Client は通知API用のHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先のベースURL。
	baseURL string
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先のベースURL（例: "http://localhost:8086/api/v1"）を指定する。
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// GetJSON は指定パスにGETリクエストを送信し、dataをresultにデシリアライズする。
func (c *Client) GetJSON(ctx context.Context, path string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, result)
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信し、dataをresultにデシリアライズする。
func (c *Client) PostJSON(ctx context.Context, path string, body any, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, result)
}

// PutJSON は指定パスにJSONボディでPUTリクエストを送信し、dataをresultにデシリアライズする。
// bodyがnilの場合はボディなしで送信する。
func (c *Client) PutJSON(ctx context.Context, path string, body any, result any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, result)
}

// DeleteJSON は指定パスにDELETEリクエストを送信し、dataをresultにデシリアライズする。
// bodyがnilの場合はボディなしで送信する。
func (c *Client) DeleteJSON(ctx context.Context, path string, body any, result any) error {
	return c.doJSON(ctx, http.MethodDelete, path, body, result)
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// コンテキストからリクエストIDを伝播する
	if requestID, ok := ctx.Value(contextKeyRequestID).(string); ok && requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("レスポンスボディの読み込みに失敗: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("HTTPエラー: status=%d, body=%s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("dataのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyRequestID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyRequestID contextKey = "request_id"

// WithRequestID はコンテキストにリクエストIDを設定する。
// 設定したIDはX-Request-IDヘッダーとして送信される。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}
