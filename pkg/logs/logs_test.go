package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/Alijeyrad/moksha_web/pkg/reqctx"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("service", "moksha_web")

	logger.Info("booked")
	logger.Error("api down")

	if !strings.Contains(a.String(), `"msg":"booked"`) || !strings.Contains(a.String(), `"msg":"api down"`) {
		t.Errorf("json handler missing records: %s", a.String())
	}
	if strings.Contains(b.String(), "booked") {
		t.Errorf("text handler should drop info records: %s", b.String())
	}
	if !strings.Contains(b.String(), "service=moksha_web") {
		t.Errorf("attrs not propagated: %s", b.String())
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled on every handler")
	}
}

func TestContextHandler_AddsRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{slog.NewTextHandler(&buf, nil)})

	ctx := reqctx.WithRequestMeta(context.Background(), &reqctx.RequestMeta{RequestID: "rid-9"})
	ctx = reqctx.WithTrace(ctx, &reqctx.TraceInfo{TraceID: "abc"})
	ctx = reqctx.WithVisitorID(ctx, "vid-1")
	logger.InfoContext(ctx, "lookup")
	logger.Info("no context")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "request_id=rid-9") || !strings.Contains(lines[0], "trace_id=abc") ||
		!strings.Contains(lines[0], "visitor_id=vid-1") {
		t.Errorf("ids missing: %s", lines[0])
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("unexpected ids on plain record: %s", lines[1])
	}
}
