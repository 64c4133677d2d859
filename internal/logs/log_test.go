package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Garsondee/Iso-Tactics/internal/config"
)

func TestInitFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := initWith("test", config.LogConfig{Level: "warn"}, zapcore.AddSync(&buf)); err != nil {
		t.Fatalf("init: %v", err)
	}
	Info("hidden")
	Warn("shown", zap.Int("n", 1))
	_ = Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing:\n%s", out)
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := initWith("test", config.LogConfig{Level: "chatty"}, zapcore.AddSync(&buf)); err != nil {
		t.Fatalf("init: %v", err)
	}
	Debug("debug-line")
	Info("info-line")
	_ = Sync()

	out := buf.String()
	if strings.Contains(out, "debug-line") || !strings.Contains(out, "info-line") {
		t.Fatalf("expected info level, got:\n%s", out)
	}
}

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	var console bytes.Buffer
	if err := initWith("iso", config.LogConfig{Level: "info", File: path, MaxSize: 1}, zapcore.AddSync(&console)); err != nil {
		t.Fatalf("init: %v", err)
	}
	Logger().Info("to file", zap.String("match", "m1"))
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("log file line is not JSON: %q: %v", line, err)
	}
	if rec["msg"] != "to file" || rec["match"] != "m1" || rec["logger"] != "iso" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["level"] != "INFO" {
		t.Fatalf("file level should be uncoloured, got %v", rec["level"])
	}
}
