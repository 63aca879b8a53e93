package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{log.InfoLevel, func(l *log.Logger) { l.Info("built") }, true},
		{log.InfoLevel, func(l *log.Logger) { l.Debug("relationship") }, false},
		{log.DebugLevel, func(l *log.Logger) { l.Debug("relationship") }, true},
		{log.WarnLevel, func(l *log.Logger) { l.Info("built") }, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level))
		if got := buf.Len() > 0; got != tt.want {
			t.Errorf("level %s: logged = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	p.done("Built Private apps")

	out := buf.String()
	if !strings.Contains(out, "Built Private apps (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnPublishStart(ctx, "file", "w1")
	h.OnPublishComplete(ctx, "file", "w1", time.Millisecond, nil)
	h.OnPublishSkipped(ctx, "file", "w1", "abc")
	h.OnResponse(ctx, "PUT", "example.com", "/workspace/w1", 200, time.Millisecond)
	h.OnCacheHit(ctx, "publish")

	for _, want := range []string{"publish start", "publish complete", "publish skipped", "http response", "cache hit"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("log output missing %q:\n%s", want, buf.String())
		}
	}
}
