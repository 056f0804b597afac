// internal/handlers/main_test.go
package handlers_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/tadoku-reader/storygen/internal/config"
)

var testLogger *slog.Logger

// TestMain はパッケージ共通のロガーと設定を用意します。
// DBはテストごとにインメモリSQLiteを作るため、ここでは接続しない。
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)

	level := slog.LevelError
	if os.Getenv("TEST_VERBOSE_LOG") != "" {
		level = slog.LevelDebug
	}
	testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(testLogger)

	os.Exit(m.Run())
}

// newTestConfig は認証を無効化した (X-User-ID を使う) テスト用設定を返します
func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Enabled = false
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	config.ApplyDefaults(cfg)
	return cfg
}
