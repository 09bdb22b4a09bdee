package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("converted", "file", "prog.scm")
		logger.Debug("hidden")
		out := buf.String()
		if !strings.Contains(out, "file=prog.scm") {
			t.Fatalf("got %v", out)
		}
		if strings.Contains(out, "hidden") {
			t.Fatalf("debug record logged at info level: %v", out)
		}
	})
}

func TestNewSpan(t *testing.T) {
	SetLevel(slog.LevelDebug)
	defer SetLevel(slog.LevelInfo)

	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
		logger Logger,
	) {
		ctx := context.Background()
		ctx1, span1 := newSpan(ctx, "file")
		ctx2, span2 := newSpan(ctx1, "expr")
		logger.InfoContext(ctx2, "done")

		lines := strings.Split(buf.String(), "\n")
		if len(lines) < 3 {
			t.Fatalf("got %v", lines)
		}
		if !strings.Contains(lines[0], "logs.span="+string(span1)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "logs.span="+string(span2)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[1], "parent="+string(span1)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], "logs.span="+string(span2)) {
			t.Fatalf("got %v", lines[2])
		}
		if SpanOf(ctx2) != span2 || SpanOf(ctx) != "" {
			t.Fatal("bad span in context")
		}
	})
}
