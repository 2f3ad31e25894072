package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/notice/internal/activity"
	"github.com/nao1215/notice/internal/config"
	"github.com/nao1215/notice/pkg/event"
	"github.com/nao1215/notice/pkg/middleware"
)

const (
	// defaultActivityLimit はアクティビティ一覧の既定の取得件数。
	defaultActivityLimit = 50
	// maxActivityLimit はアクティビティ一覧の取得件数の上限。
	maxActivityLimit = 500
	// shutdownTimeout はグレースフルシャットダウンの待機時間。
	shutdownTimeout = 10 * time.Second
)

// Server は通知サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store は通知レコードの唯一の保持者。
	store *Store
	// activity は更新操作を記録するアクティビティログ。nilの場合は記録しない。
	activity *activity.Log
	// logger は構造化ロガー。
	logger *slog.Logger
	// defaultPageSize はpage_size未指定時の件数。
	defaultPageSize int
	// maxPageSize はpage_sizeの上限。
	maxPageSize int
}

// NewServer は新しい通知サーバーを生成する。
// storeは呼び出し側が生成して渡す。activityLogがnilの場合はアクティビティを記録しない。
func NewServer(cfg *config.Config, store *Store, activityLog *activity.Log, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	registerValidations()

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Latency(cfg.LatencyBase, cfg.LatencyJitter))

	s := &Server{
		router:          router,
		port:            cfg.Port,
		store:           store,
		activity:        activityLog,
		logger:          logger,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
	s.setupRoutes()

	return s
}

// Handler はサーバーのHTTPハンドラーを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで処理を続ける。
// キャンセル後は処理中のリクエストを待ってから終了する。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("通知サービスを起動します", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("通知サービスを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	{
		notifications := api.Group("/notifications")
		{
			// 通知一覧取得
			notifications.GET("", s.handleList())
			// 未読件数取得
			notifications.GET("/unread-count", s.handleUnreadCount())
			// 重要な通知の取得
			notifications.GET("/important", s.handleImportant())
			// 新着の通知の取得
			notifications.GET("/new", s.handleNew())
			// 通知詳細取得
			notifications.GET("/:id", s.handleGet())
			// 通知のアクティビティ取得
			notifications.GET("/:id/activity", s.handleNotificationActivity())
			// 通知を既読にする
			notifications.PUT("/:id/read", s.handleMarkAsRead())
			// 複数の通知を既読にする
			notifications.PUT("/read/batch", s.handleMarkMultipleAsRead())
			// 全通知を既読にする
			notifications.PUT("/read-all", s.handleMarkAllAsRead())
			// 通知を追加する
			notifications.POST("", s.handleCreate())
			// 通知を削除する
			notifications.DELETE("/:id", s.handleDelete())
			// 複数の通知を削除する
			notifications.DELETE("/batch", s.handleDeleteMultiple())
		}

		// 最近のアクティビティ取得
		api.GET("/activity", s.handleRecentActivity())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "notification"})
	})

	s.router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "エンドポイントが存在しません")
	})
}

// queryInt はクエリパラメータを正の整数として読み込む。
// 未指定、数値でない、または1未満の場合はdefを返す。
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// record はアクティビティログにイベントを追記する。
// 失敗してもリクエストは失敗させず、警告ログのみ出力する。
func (s *Server) record(c *gin.Context, aggregateID string, aggregateType event.AggregateType, eventType event.Type, data any) {
	if s.activity == nil {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := s.activity.Append(ctx, aggregateID, aggregateType, eventType, data); err != nil {
		s.logger.WarnContext(ctx, "アクティビティの記録に失敗しました",
			slog.String("aggregate_id", aggregateID),
			slog.String("event_type", string(eventType)),
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("error", err),
		)
	}
}

// recordRead はNotificationReadイベントを記録する。
func (s *Server) recordRead(c *gin.Context, id ID, batch bool) {
	s.record(c, event.AggregateIDForNotification(int(id)), event.AggregateTypeNotification,
		event.TypeNotificationRead, event.NotificationReadData{NotificationID: int(id), Batch: batch})
}

// recordDeleted はNotificationDeletedイベントを記録する。
func (s *Server) recordDeleted(c *gin.Context, r Record) {
	s.record(c, event.AggregateIDForNotification(int(r.ID)), event.AggregateTypeNotification,
		event.TypeNotificationDeleted, event.NotificationDeletedData{NotificationID: int(r.ID), WasUnread: !r.IsRead})
}

// handleList はフィルタとページ指定に従って通知一覧を返すハンドラ。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := Filter(c.DefaultQuery("type", string(FilterAll)))
		page := queryInt(c, "page", 1)
		pageSize := min(queryInt(c, "page_size", s.defaultPageSize), s.maxPageSize)

		succeed(c, http.StatusOK, "通知一覧を取得しました", s.store.List(filter, page, pageSize))
	}
}

// handleUnreadCount は未読件数と総件数を返すハンドラ。
func (s *Server) handleUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		succeed(c, http.StatusOK, "未読件数を取得しました", gin.H{
			"unread_count": s.store.UnreadCount(),
			"total":        s.store.Total(),
		})
	}
}

// handleImportant は優先度タグ「重要」が付いた通知を返すハンドラ。
func (s *Server) handleImportant() gin.HandlerFunc {
	return func(c *gin.Context) {
		succeed(c, http.StatusOK, "重要な通知を取得しました", s.store.Important())
	}
}

// handleNew は新着の通知を返すハンドラ。
func (s *Server) handleNew() gin.HandlerFunc {
	return func(c *gin.Context) {
		succeed(c, http.StatusOK, "新着の通知を取得しました", s.store.New())
	}
}

// handleGet は指定された通知を返すハンドラ。既読状態は変更しない。
func (s *Server) handleGet() gin.HandlerFunc {
	return func(c *gin.Context) {
		r, found := s.store.Lookup(c.Param("id"))
		if !found {
			fail(c, http.StatusNotFound, "通知が見つかりません")
			return
		}
		succeed(c, http.StatusOK, "通知を取得しました", r)
	}
}

// handleMarkAsRead は指定された通知を既読にするハンドラ。
// 既読済みの通知に対しても成功を返し、transitionedで状態が変わったかを示す。
func (s *Server) handleMarkAsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := ParseID(c.Param("id"))
		if !valid {
			fail(c, http.StatusNotFound, "通知が見つかりません")
			return
		}
		found, transitioned := s.store.MarkAsReadStatus(id)
		if !found {
			fail(c, http.StatusNotFound, "通知が見つかりません")
			return
		}
		if transitioned {
			s.recordRead(c, id, false)
		}

		succeed(c, http.StatusOK, "通知を既読にしました", gin.H{
			"success":      true,
			"transitioned": transitioned,
		})
	}
}

// idsRequest は一括操作のリクエストのJSON構造。
type idsRequest struct {
	// IDs は対象の通知ID。数値と数値文字列の両方を受け付ける。
	IDs []ID `json:"ids" binding:"required"`
}

// handleMarkMultipleAsRead は複数の通知を既読にするハンドラ。
func (s *Server) handleMarkMultipleAsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req idsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, validationMessage(err))
			return
		}

		changed := s.store.MarkMultipleAsReadIDs(req.IDs)
		for _, id := range changed {
			s.recordRead(c, id, true)
		}

		msg := fmt.Sprintf("%d件の通知を既読にしました", len(changed))
		if len(changed) == 0 {
			msg = "既読にする通知がありませんでした"
		}
		succeed(c, http.StatusOK, msg, gin.H{
			"count":   len(changed),
			"success": len(changed) > 0,
		})
	}
}

// handleMarkAllAsRead は全通知を既読にするハンドラ。
func (s *Server) handleMarkAllAsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		count := s.store.MarkAllAsRead()
		if count > 0 {
			s.record(c, event.AggregateIDNotificationSet, event.AggregateTypeNotificationSet,
				event.TypeAllNotificationsRead, event.AllNotificationsReadData{Count: count})
		}

		succeed(c, http.StatusOK, "すべての通知を既読にしました", gin.H{"count": count})
	}
}

// tagRequest は通知追加リクエスト内のタグ。
type tagRequest struct {
	// Name はタグの表示名。
	Name string `json:"name" binding:"required"`
	// Kind はタグの分類。
	Kind TagKind `json:"kind" binding:"required,oneof=scope priority category"`
}

// createRequest は通知追加リクエストのJSON構造。
// ID、日付グループ、時刻、新着・既読状態はサーバーが決定するため受け付けない。
type createRequest struct {
	// Title は通知のタイトル。
	Title string `json:"title" binding:"required"`
	// Summary は一覧表示用の要約。
	Summary string `json:"summary"`
	// Content は通知本文。
	Content string `json:"content"`
	// Type は通知の種別。
	Type Type `json:"type" binding:"required,notification_type"`
	// Tags は表示用タグ。
	Tags []tagRequest `json:"tags" binding:"omitempty,dive"`
	// Actions は実行可能な操作。
	Actions []Action `json:"actions"`
	// Attachments は添付ファイル。
	Attachments []Attachment `json:"attachments"`
}

// draft はリクエストをStoreに渡すDraftに変換する。
func (r createRequest) draft() Draft {
	tags := make([]Tag, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, Tag{Name: t.Name, Kind: t.Kind})
	}
	return Draft{
		Title:       r.Title,
		Summary:     r.Summary,
		Content:     r.Content,
		Type:        r.Type,
		Tags:        tags,
		Actions:     r.Actions,
		Attachments: r.Attachments,
	}
}

// handleCreate は通知を追加し、NotificationCreatedイベントを記録するハンドラ。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, validationMessage(err))
			return
		}

		r := s.store.Add(req.draft())
		s.record(c, event.AggregateIDForNotification(int(r.ID)), event.AggregateTypeNotification,
			event.TypeNotificationCreated, event.NotificationCreatedData{
				NotificationID:   int(r.ID),
				Title:            r.Title,
				NotificationType: string(r.Type),
			})

		succeed(c, http.StatusCreated, "通知を作成しました", r)
	}
}

// handleDelete は指定された通知を削除するハンドラ。
func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := ParseID(c.Param("id"))
		if !valid {
			fail(c, http.StatusNotFound, "通知が見つかりません")
			return
		}

		r, found := s.store.Remove(id)
		if !found {
			fail(c, http.StatusNotFound, "通知が見つかりません")
			return
		}
		s.recordDeleted(c, r)

		succeed(c, http.StatusOK, "通知を削除しました", gin.H{"success": true})
	}
}

// handleDeleteMultiple は複数の通知を削除するハンドラ。
func (s *Server) handleDeleteMultiple() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req idsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, validationMessage(err))
			return
		}

		removed := s.store.RemoveMultiple(req.IDs)
		for _, r := range removed {
			s.recordDeleted(c, r)
		}

		succeed(c, http.StatusOK, fmt.Sprintf("%d件の通知を削除しました", len(removed)), gin.H{
			"count": len(removed),
		})
	}
}

// handleNotificationActivity は指定された通知のアクティビティを古い順に返すハンドラ。
// 削除済みの通知の履歴も返す。
func (s *Server) handleNotificationActivity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := ParseID(c.Param("id"))
		if !valid {
			fail(c, http.StatusNotFound, "通知が見つかりません")
			return
		}
		if s.activity == nil {
			succeed(c, http.StatusOK, "アクティビティを取得しました", []event.Event{})
			return
		}

		events, err := s.activity.ByAggregate(c.Request.Context(), event.AggregateIDForNotification(int(id)))
		if err != nil {
			s.logger.ErrorContext(c.Request.Context(), "アクティビティの取得に失敗しました",
				slog.Int("notification_id", int(id)),
				slog.Any("error", err),
			)
			fail(c, http.StatusInternalServerError, "アクティビティの取得に失敗しました")
			return
		}
		succeed(c, http.StatusOK, "アクティビティを取得しました", events)
	}
}

// handleRecentActivity は最近のアクティビティを新しい順に返すハンドラ。
func (s *Server) handleRecentActivity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.activity == nil {
			succeed(c, http.StatusOK, "アクティビティを取得しました", []event.Event{})
			return
		}

		limit := min(queryInt(c, "limit", defaultActivityLimit), maxActivityLimit)
		events, err := s.activity.Recent(c.Request.Context(), limit)
		if err != nil {
			s.logger.ErrorContext(c.Request.Context(), "アクティビティの取得に失敗しました", slog.Any("error", err))
			fail(c, http.StatusInternalServerError, "アクティビティの取得に失敗しました")
			return
		}
		succeed(c, http.StatusOK, "アクティビティを取得しました", events)
	}
}
