// 通知サービスのエントリポイント。
// 社内通知をプロセス内メモリで管理し、H5版フロントエンド向けのHTTP APIとして公開する。
// SIGINTまたはSIGTERMを受け取ると処理中のリクエストを待ってから終了する。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/notice/internal/activity"
	"github.com/nao1215/notice/internal/config"
	"github.com/nao1215/notice/internal/notification"
)

func main() {
	if err := run(); err != nil {
		slog.Error("通知サービスが異常終了しました", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	activityLog, err := activity.Open(ctx, cfg.ActivityDSN, logger)
	if err != nil {
		return fmt.Errorf("アクティビティログの初期化に失敗: %w", err)
	}
	defer activityLog.Close()

	var seed []notification.Record
	if cfg.SeedEnabled {
		seed = notification.SeedRecords(time.Now())
	}
	store := notification.NewStore(seed)
	logger.Info("通知を読み込みました",
		slog.Int("total", store.Total()),
		slog.Int("unread", store.UnreadCount()),
	)

	server := notification.NewServer(cfg, store, activityLog, logger)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("通知サービスの実行に失敗: %w", err)
	}
	return nil
}
