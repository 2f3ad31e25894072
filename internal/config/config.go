// Package config は通知サービスの設定を環境変数から読み込む。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config は通知サービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8086"`
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	// LatencyBase は疑似ネットワーク遅延の基本値。
	LatencyBase time.Duration `env:"LATENCY_BASE" envDefault:"500ms"`
	// LatencyJitter は基本値に加算する遅延の揺らぎの上限。
	LatencyJitter time.Duration `env:"LATENCY_JITTER" envDefault:"300ms"`
	// ActivityDSN はアクティビティログのSQLite DSN。
	ActivityDSN string `env:"ACTIVITY_DSN" envDefault:":memory:"`
	// DefaultPageSize は一覧取得時の既定のページサイズ。
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"10"`
	// MaxPageSize は一覧取得時のページサイズの上限。
	MaxPageSize int `env:"MAX_PAGE_SIZE" envDefault:"100"`
	// LogLevel はログレベル（debug, info, warn, error）。
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// SeedEnabled がfalseの場合、初期通知を読み込まずに空の状態で起動する。
	SeedEnabled bool `env:"SEED_ENABLED" envDefault:"true"`
}

// Load はカレントディレクトリの.envと環境変数から設定を読み込む。
// .envが存在しない場合は環境変数のみを使う。
func Load() (*Config, error) {
	// .envは任意のため読み込みエラーは無視する
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFrom は指定された環境変数マップから設定を読み込む。
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate は値の範囲を検証する。
func (c *Config) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORTが空です"))
	}
	if c.LatencyBase < 0 || c.LatencyJitter < 0 {
		errs = append(errs, errors.New("LATENCY_BASEとLATENCY_JITTERは0以上である必要があります"))
	}
	if c.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZEは1以上である必要があります: %d", c.DefaultPageSize))
	}
	if c.MaxPageSize < c.DefaultPageSize {
		errs = append(errs, fmt.Errorf("MAX_PAGE_SIZE(%d)はDEFAULT_PAGE_SIZE(%d)以上である必要があります", c.MaxPageSize, c.DefaultPageSize))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("設定が不正です: %w", errors.Join(errs...))
	}
	return nil
}

// ParseLogLevel はログレベル文字列をslog.Levelに変換する。
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("不明なLOG_LEVELです: %q", s)
}
