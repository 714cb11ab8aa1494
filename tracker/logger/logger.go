package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
	TypeHTTP    LogType = "HTTP"
	TypeCatalog LogType = "CAT"
)

var typeTags = map[string]LogType{
	"cmd":   TypeCommand,
	"db":    TypeDB,
	"sys":   TypeSystem,
	"error": TypeError,
	"http":  TypeHTTP,
	"cat":   TypeCatalog,
}

// CustomHandler writes one colored line per record:
//
//	[RaidLedger] [15:04:05] [INFO] [DB] Query executed (took 3ms) query=...
type CustomHandler struct {
	prefix string
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	// addSource prints the caller for every level, not only errors.
	addSource bool
}

func NewHandler(prefix string, level slog.Leveler) *CustomHandler {
	return NewHandlerWriter(os.Stdout, prefix, level)
}

func NewHandlerWriter(w io.Writer, prefix string, level slog.Leveler) *CustomHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &CustomHandler{
		prefix: prefix,
		level:  level,
		out:    w,
		mu:     &sync.Mutex{},
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &c
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string(nil), h.groups...), name)
	return &c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(r.Message) {
		return nil
	}

	levelColor, levelText := colorGreen, "INFO"
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level < slog.LevelInfo:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	fields := collect(h.attrs, r)

	message := r.Message
	if h.addSource && r.Level < slog.LevelError {
		if location := sourceLocation(r.PC); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
	}
	if r.Level >= slog.LevelError {
		location := fields.get("error_location")
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := fields.get("error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}
	if cmd, user := fields.get("name"), fields.get("user_name"); cmd != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmd, user)
	}
	if status := fields.get("status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took := fields.get("took"); took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}

	var extra strings.Builder
	group := strings.Join(h.groups, ".")
	for _, a := range fields.attrs {
		if isInternalAttr(a.Key) {
			continue
		}
		key := a.Key
		if group != "" {
			key = group + "." + key
		}
		fmt.Fprintf(&extra, " %s=%v", key, a.Value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s%s%s] %s%s%s\n",
		colorWhite,
		h.prefix,
		r.Time.Format("15:04:05"),
		levelColor, levelText, colorWhite,
		colorCyan, logType(fields.get("type")), colorWhite,
		message,
		extra.String(),
		colorReset,
	)
	return err
}

type recordFields struct {
	attrs []slog.Attr
}

func collect(base []slog.Attr, r slog.Record) recordFields {
	f := recordFields{attrs: append([]slog.Attr(nil), base...)}
	r.Attrs(func(a slog.Attr) bool {
		f.attrs = append(f.attrs, a)
		return true
	})
	return f
}

// get returns the last value recorded for key.
func (f recordFields) get(key string) string {
	for i := len(f.attrs) - 1; i >= 0; i-- {
		if f.attrs[i].Key == key {
			return f.attrs[i].Value.String()
		}
	}
	return ""
}

func logType(tag string) LogType {
	if t, ok := typeTags[tag]; ok {
		return t
	}
	return TypeSystem
}

var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"opening gateway connection",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

func shouldSkipLog(msg string) bool {
	m := strings.ToLower(msg)
	for _, skip := range skippedMessages {
		if strings.Contains(m, skip) {
			return true
		}
	}
	return false
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status", "took", "error", "error_location":
		return true
	}
	return false
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

// Options selects the default handler. Format "json" switches to slog's JSON
// handler for log shippers; anything else uses the colored text handler.
type Options struct {
	Level     slog.Level
	Format    string
	AddSource bool
}

// Setup installs the configured handler as the default slog logger.
func Setup(prefix string, opts Options) {
	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}).WithAttrs([]slog.Attr{slog.String("app", prefix)})
	} else {
		ch := NewHandler(prefix, opts.Level)
		ch.addSource = opts.AddSource
		h = ch
	}
	slog.SetDefault(slog.New(h))
}

// Since formats the elapsed time the way the handler prints it.
func Since(start time.Time) slog.Attr {
	return slog.Duration("took", time.Since(start).Round(time.Microsecond))
}
