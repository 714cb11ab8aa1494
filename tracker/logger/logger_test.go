package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestCustomHandler(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *slog.Logger)
		contains []string
		absent   []string
	}{
		{
			name: "type tag and took",
			log: func(l *slog.Logger) {
				l.Info("Query executed", slog.String("type", "db"), slog.Duration("took", 3*time.Millisecond), slog.String("query", "SELECT 1"))
			},
			contains: []string{"[RaidLedger]", "[INFO]", "DB", "Query executed (took 3ms)", "query=SELECT 1"},
			absent:   []string{"type=db"},
		},
		{
			name: "error details",
			log: func(l *slog.Logger) {
				l.Error("Adjust failed", slog.String("type", "error"), slog.Any("error", errors.New("boom")), slog.String("error_location", "svc.go:10"))
			},
			contains: []string{"[ERROR]", "ERR", "Adjust failed (svc.go:10): boom"},
		},
		{
			name: "command and user",
			log: func(l *slog.Logger) {
				l.With(slog.String("type", "cmd")).Info("Command executed", slog.String("name", "needs"), slog.String("user_name", "alice"))
			},
			contains: []string{"CMD", "Command executed [needs by alice]"},
		},
		{
			name: "debug filtered",
			log: func(l *slog.Logger) {
				l.Debug("hidden")
			},
			absent: []string{"hidden"},
		},
		{
			name: "library noise skipped",
			log: func(l *slog.Logger) {
				l.Info("sending heartbeat")
			},
			absent: []string{"heartbeat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandlerWriter(&buf, "RaidLedger", slog.LevelInfo)))
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
			for _, not := range tt.absent {
				if strings.Contains(out, not) {
					t.Errorf("output %q contains %q", out, not)
				}
			}
		})
	}
}

func TestCustomHandlerAddSource(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandlerWriter(&buf, "RaidLedger", slog.LevelInfo)
	h.addSource = true
	slog.New(h).Info("Catalog refreshed", slog.String("type", "cat"))

	if out := buf.String(); !strings.Contains(out, "Catalog refreshed (logger_test.go:") {
		t.Errorf("output %q does not carry the caller", out)
	}
}
