package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testRequest はテストサーバーが受け取ったリクエスト情報を保持する構造体。
type testRequest struct {
	// Method はHTTPメソッド。
	Method string
	// Path はリクエストパス。
	Path string
	// Body はリクエストボディ。
	Body []byte
	// Headers はリクエストヘッダー。
	Headers http.Header
}

// testPayload はテスト用のdataペイロード。
type testPayload struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// envelopeServer はenvを返し、受け取ったリクエストをreceivedに記録するテストサーバーを起動する。
func envelopeServer(t *testing.T, status int, env map[string]any, received *testRequest) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if received != nil {
			received.Method = r.Method
			received.Path = r.URL.Path
			received.Body, _ = io.ReadAll(r.Body)
			received.Headers = r.Header.Clone()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(env)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func okEnvelope(data any) map[string]any {
	return map[string]any{
		"success":   true,
		"message":   "ok",
		"data":      data,
		"timestamp": "2024-06-20T10:30:00.000Z",
	}
}

// TestNew はNew関数でクライアントが正しく生成されることを検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("クライアントが正常に生成されること", func(t *testing.T) {
		t.Parallel()

		client := New("http://localhost:8086/api/v1")
		if client == nil {
			t.Fatal("New()がnilを返した")
		}
		if client.baseURL != "http://localhost:8086/api/v1" {
			t.Errorf("baseURL = %q, want %q", client.baseURL, "http://localhost:8086/api/v1")
		}
	})

	t.Run("タイムアウトが30秒に設定されていること", func(t *testing.T) {
		t.Parallel()

		client := New("http://localhost:8086")
		if client.httpClient.Timeout.Seconds() != 30 {
			t.Errorf("Timeout = %v, want 30s", client.httpClient.Timeout)
		}
	})
}

// TestGetJSON はGetJSON関数を検証する。
func TestGetJSON(t *testing.T) {
	t.Parallel()

	t.Run("エンベロープのdataがresultにデシリアライズされること", func(t *testing.T) {
		t.Parallel()

		var received testRequest
		ts := envelopeServer(t, http.StatusOK, okEnvelope(testPayload{ID: 1, Title: "定例会議"}), &received)

		var got testPayload
		if err := New(ts.URL).GetJSON(t.Context(), "/notifications/1", &got); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if got.ID != 1 || got.Title != "定例会議" {
			t.Errorf("result = %+v, want {ID:1 Title:定例会議}", got)
		}
		if received.Method != http.MethodGet {
			t.Errorf("Method = %q, want GET", received.Method)
		}
		if received.Path != "/notifications/1" {
			t.Errorf("Path = %q, want /notifications/1", received.Path)
		}
		if len(received.Body) != 0 {
			t.Errorf("GETリクエストにボディが含まれている: %s", received.Body)
		}
		if ct := received.Headers.Get("Content-Type"); ct != "" {
			t.Errorf("ボディなしでContent-Type = %q が設定された", ct)
		}
	})

	t.Run("success=falseの場合ErrUnsuccessfulが返ること", func(t *testing.T) {
		t.Parallel()

		ts := envelopeServer(t, http.StatusNotFound, map[string]any{
			"success":   false,
			"message":   "通知が見つかりません",
			"data":      nil,
			"timestamp": "2024-06-20T10:30:00.000Z",
		}, nil)

		err := New(ts.URL).GetJSON(t.Context(), "/notifications/999", nil)
		if !errors.Is(err, ErrUnsuccessful) {
			t.Fatalf("err = %v, want ErrUnsuccessful", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("err = %T, want *APIError", err)
		}
		if apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusNotFound)
		}
		if apiErr.Message != "通知が見つかりません" {
			t.Errorf("Message = %q, want %q", apiErr.Message, "通知が見つかりません")
		}
	})

	t.Run("2xxでもsuccess=falseならエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := envelopeServer(t, http.StatusOK, map[string]any{"success": false, "message": "失敗"}, nil)

		err := New(ts.URL).GetJSON(t.Context(), "/x", nil)
		if !errors.Is(err, ErrUnsuccessful) {
			t.Errorf("err = %v, want ErrUnsuccessful", err)
		}
	})

	t.Run("エンベロープでないエラー応答でHTTPエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer ts.Close()

		err := New(ts.URL).GetJSON(t.Context(), "/x", nil)
		if err == nil {
			t.Fatal("エラーが返されなかった")
		}
		if errors.Is(err, ErrUnsuccessful) {
			t.Error("エンベロープでない応答がErrUnsuccessfulとして扱われた")
		}
	})

	t.Run("不正なJSONレスポンスでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{invalid"))
		}))
		defer ts.Close()

		if err := New(ts.URL).GetJSON(t.Context(), "/x", nil); err == nil {
			t.Error("不正なJSONでエラーが返されなかった")
		}
	})

	t.Run("接続できないサーバーに対してエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if err := New("http://127.0.0.1:1").GetJSON(t.Context(), "/x", nil); err == nil {
			t.Error("接続エラーが返されなかった")
		}
	})

	t.Run("キャンセルされたコンテキストでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := envelopeServer(t, http.StatusOK, okEnvelope(nil), nil)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		if err := New(ts.URL).GetJSON(ctx, "/x", nil); err == nil {
			t.Error("キャンセル済みコンテキストでエラーが返されなかった")
		}
	})
}

// TestPostJSON はPostJSON関数を検証する。
func TestPostJSON(t *testing.T) {
	t.Parallel()

	t.Run("JSONボディを送信してdataを取得できること", func(t *testing.T) {
		t.Parallel()

		var received testRequest
		ts := envelopeServer(t, http.StatusCreated, okEnvelope(testPayload{ID: 13, Title: "新しい通知"}), &received)

		var got testPayload
		err := New(ts.URL).PostJSON(t.Context(), "/notifications", map[string]string{"title": "新しい通知"}, &got)
		if err != nil {
			t.Fatalf("PostJSON()でエラーが発生: %v", err)
		}
		if got.ID != 13 {
			t.Errorf("ID = %d, want 13", got.ID)
		}
		if received.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", received.Method)
		}
		if ct := received.Headers.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var body map[string]string
		if err := json.Unmarshal(received.Body, &body); err != nil {
			t.Fatalf("リクエストボディのパースに失敗: %v", err)
		}
		if body["title"] != "新しい通知" {
			t.Errorf("title = %q, want %q", body["title"], "新しい通知")
		}
	})

	t.Run("シリアライズできないボディでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		err := New("http://127.0.0.1:1").PostJSON(t.Context(), "/x", make(chan int), nil)
		if err == nil {
			t.Error("シリアライズエラーが返されなかった")
		}
	})
}

// TestPutAndDeleteJSON はPutJSONとDeleteJSONのメソッドを検証する。
func TestPutAndDeleteJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		call       func(c *Client, ctx context.Context, result any) error
		wantMethod string
		wantBody   bool
	}{
		{
			name: "PutJSONはボディなしPUTを送信すること",
			call: func(c *Client, ctx context.Context, result any) error {
				return c.PutJSON(ctx, "/notifications/read-all", nil, result)
			},
			wantMethod: http.MethodPut,
		},
		{
			name: "DeleteJSONはボディ付きDELETEを送信すること",
			call: func(c *Client, ctx context.Context, result any) error {
				return c.DeleteJSON(ctx, "/notifications/batch", map[string][]int{"ids": {1, 2}}, result)
			},
			wantMethod: http.MethodDelete,
			wantBody:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received testRequest
			ts := envelopeServer(t, http.StatusOK, okEnvelope(map[string]int{"count": 2}), &received)

			var got struct {
				Count int `json:"count"`
			}
			if err := tt.call(New(ts.URL), t.Context(), &got); err != nil {
				t.Fatalf("エラーが発生: %v", err)
			}
			if got.Count != 2 {
				t.Errorf("count = %d, want 2", got.Count)
			}
			if received.Method != tt.wantMethod {
				t.Errorf("Method = %q, want %q", received.Method, tt.wantMethod)
			}
			if hasBody := len(received.Body) > 0; hasBody != tt.wantBody {
				t.Errorf("ボディの有無 = %v, want %v", hasBody, tt.wantBody)
			}
		})
	}
}

// TestWithRequestID はリクエストIDの伝播を検証する。
func TestWithRequestID(t *testing.T) {
	t.Parallel()

	t.Run("コンテキストのリクエストIDがX-Request-IDとして送信されること", func(t *testing.T) {
		t.Parallel()

		var received testRequest
		ts := envelopeServer(t, http.StatusOK, okEnvelope(nil), &received)

		ctx := WithRequestID(t.Context(), "req-abc-123")
		if err := New(ts.URL).GetJSON(ctx, "/notifications", nil); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if got := received.Headers.Get("X-Request-ID"); got != "req-abc-123" {
			t.Errorf("X-Request-ID = %q, want %q", got, "req-abc-123")
		}
	})

	t.Run("リクエストIDが未設定の場合はヘッダーを送信しないこと", func(t *testing.T) {
		t.Parallel()

		var received testRequest
		ts := envelopeServer(t, http.StatusOK, okEnvelope(nil), &received)

		if err := New(ts.URL).GetJSON(t.Context(), "/notifications", nil); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if got := received.Headers.Get("X-Request-ID"); got != "" {
			t.Errorf("X-Request-ID = %q, want empty", got)
		}
	})
}
