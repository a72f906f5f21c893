package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info logged at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be enabled")
	}
}

func TestLoadConfigVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile, verbose = path, true
	t.Cleanup(func() { cfgFile, verbose = "portfolio.yml", false })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Log.Level != "debug" {
		t.Errorf("cfg = addr %q level %q", cfg.Server.Addr, cfg.Log.Level)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	if err := os.WriteFile(path, []byte("server:\n  mode: prod\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile = path
	t.Cleanup(func() { cfgFile = "portfolio.yml" })

	if _, err := loadConfig(); err == nil {
		t.Error("expected validation error")
	}
}

func TestRenderKinds(t *testing.T) {
	got := strings.Join(renderKinds(), ",")
	if got != "glitch,flow,voronoi" {
		t.Errorf("renderKinds = %q", got)
	}
	if err := renderCmd.Args(renderCmd, []string{"plasma"}); err == nil {
		t.Error("expected unknown kind to be rejected")
	}
}
