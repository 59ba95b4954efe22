package logger

import (
	"testing"

	"github.com/samvad-hq/todo-client/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZapLogsObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.InfoObj("mirror pass completed", "mirror_result", map[string]any{"published": 3})
	log.DebugObj("debug line", "k", 1)
	log.WarnObj("warn line", "k", 2)
	log.ErrorObj("error line", "k", 3)

	if logs.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "mirror pass completed" || entry.Level != zapcore.InfoLevel {
		t.Fatalf("unexpected entry %+v", entry)
	}
	field, ok := entry.ContextMap()["mirror_result"].(map[string]any)
	if !ok || field["published"] != 3 {
		t.Fatalf("unexpected field %#v", entry.ContextMap()["mirror_result"])
	}
}

func TestFromZapNilIsNop(t *testing.T) {
	if _, ok := FromZap(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil zap logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestInitSetsPackageLogger(t *testing.T) {
	t.Cleanup(func() { S = nil })

	log, err := Init(&config.Config{AppName: "todo-client", Env: "test", LogLevel: "error"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if log == nil || S == nil {
		t.Fatalf("expected loggers to be initialized")
	}
	WarnObj("suppressed below level", "k", "v")
}
