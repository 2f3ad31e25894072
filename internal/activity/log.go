package activity

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nao1215/notice/pkg/event"
	"github.com/nao1215/notice/pkg/migration"
)

//go:embed migrations/*.sql
var migrations embed.FS

// memoryDSN はプロセス内のみで有効なSQLiteのDSN。
const memoryDSN = ":memory:"

// Log はSQLiteに保存されるアクティビティログ。
type Log struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// Open はdsnのSQLiteデータベースを開き、マイグレーションを適用する。
// dsnが空の場合はインメモリDBを使う。
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Log, error) {
	if dsn == "" {
		dsn = memoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// インメモリDBは接続ごとに別のDBになるため単一接続で使う。
	db.SetMaxOpenConns(1)

	if err := migration.Run(ctx, db, migrations, "migrations", logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return &Log{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (l *Log) Close() error {
	return l.db.Close()
}

// Append はイベントを追記する。Versionは同じAggregate内の最大値+1が採番される。
func (l *Log) Append(ctx context.Context, aggregateID string, aggregateType event.AggregateType, eventType event.Type, data any) (*event.Event, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var latest int64
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM activity_events WHERE aggregate_id = ?",
		aggregateID,
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("最新バージョンの取得に失敗: %w", err)
	}

	ev, err := event.New(aggregateID, aggregateType, eventType, latest+1, data)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO activity_events (id, aggregate_id, aggregate_type, event_type, data, version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.AggregateID, string(ev.AggregateType), string(ev.EventType), string(ev.Data), ev.Version,
		ev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("イベントの保存に失敗: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return ev, nil
}

// Recent は新しい順に最大limit件のイベントを返す。limitが1未満の場合は50件。
func (l *Log) Recent(ctx context.Context, limit int) ([]event.Event, error) {
	if limit < 1 {
		limit = 50
	}
	return l.query(ctx,
		`SELECT id, aggregate_id, aggregate_type, event_type, data, version, created_at
		 FROM activity_events ORDER BY seq DESC LIMIT ?`,
		limit,
	)
}

// ByAggregate は指定Aggregateのイベントをバージョン順に返す。
func (l *Log) ByAggregate(ctx context.Context, aggregateID string) ([]event.Event, error) {
	return l.query(ctx,
		`SELECT id, aggregate_id, aggregate_type, event_type, data, version, created_at
		 FROM activity_events WHERE aggregate_id = ? ORDER BY version ASC`,
		aggregateID,
	)
}

// query はイベントを取得する共通処理。結果が0件の場合は空スライスを返す。
func (l *Log) query(ctx context.Context, query string, args ...any) ([]event.Event, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := []event.Event{}
	for rows.Next() {
		var (
			ev        event.Event
			aggType   string
			evType    string
			data      string
			createdAt string
		)
		if err := rows.Scan(&ev.ID, &ev.AggregateID, &aggType, &evType, &data, &ev.Version, &createdAt); err != nil {
			return nil, fmt.Errorf("イベント行の読み込みに失敗: %w", err)
		}
		ev.AggregateType = event.AggregateType(aggType)
		ev.EventType = event.Type(evType)
		ev.Data = json.RawMessage(data)
		if ev.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("作成日時の解析に失敗: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("イベント一覧の走査に失敗: %w", err)
	}
	return events, nil
}
