package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/shuldan/modular/pkg/contracts"
)

const (
	levelTrace    = slog.LevelDebug - 4
	levelCritical = slog.LevelError + 4
)

var levelNames = map[slog.Level]string{
	levelTrace:    "TRACE",
	levelCritical: "CRITICAL",
}

func getLevelName(level slog.Leveler) string {
	if name, ok := levelNames[level.Level()]; ok {
		return name
	}
	return level.Level().String()
}

// ParseLevel maps a configuration string to a level. Unknown names fall
// back to info and report false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return levelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	case "critical", "fatal":
		return levelCritical, true
	}
	return slog.LevelInfo, false
}

// WithConfig applies the keys of a "log" section:
//
//	level: debug      # trace|debug|info|warn|error|critical
//	format: json      # json|text
//	output: stderr    # stdout|stderr|discard
//	color: true
//	source: false
func WithConfig(section contracts.Config) Option {
	return func(c *config) {
		if section == nil {
			return
		}
		if section.Has("level") {
			raw := section.GetString("level")
			level, ok := ParseLevel(raw)
			if !ok {
				c.err = ErrUnknownLevel.WithDetail("level", raw)
				return
			}
			c.level = level
		}

		switch format := section.GetString("format", "text"); format {
		case "json", "text":
			c.json = format == "json"
		default:
			c.err = ErrUnknownFormat.WithDetail("format", format)
			return
		}

		if w, ok := outputs[section.GetString("output")]; ok {
			c.writer = w
		}
		c.wantColor = section.GetBool("color", c.wantColor)
		c.addSource = section.GetBool("source", c.addSource)
	}
}

var outputs = map[string]io.Writer{
	"stdout":  os.Stdout,
	"stderr":  os.Stderr,
	"discard": io.Discard,
}

type sLogger struct {
	*slog.Logger
}

var _ contracts.Logger = (*sLogger)(nil)

// NewLogger builds a logger writing text lines to stdout at info level
// unless options say otherwise.
func NewLogger(opts ...Option) (contracts.Logger, error) {
	cfg := &config{level: slog.LevelInfo, writer: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.replaceAttr == nil {
		WithDefaultReplaceAttr()(cfg)
	}
	return &sLogger{Logger: slog.New(cfg.handler())}, nil
}

func (c *config) handler() slog.Handler {
	if c.json {
		return slog.NewJSONHandler(c.writer, &slog.HandlerOptions{
			Level:       c.level,
			AddSource:   c.addSource,
			ReplaceAttr: c.replaceAttr,
		})
	}
	return newTextHandler(c.writer, c.wantColor && isTerminal(c.writer), c.replaceAttr, c.level)
}

// Nop returns a logger that discards everything.
func Nop() contracts.Logger {
	return &sLogger{Logger: slog.New(newTextHandler(io.Discard, false, nil, levelCritical+1))}
}

func (l *sLogger) emit(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.LogAttrs(ctx, level, msg, attrsOf(args)...)
}

func (l *sLogger) Trace(msg string, args ...any)    { l.emit(levelTrace, msg, args) }
func (l *sLogger) Debug(msg string, args ...any)    { l.emit(slog.LevelDebug, msg, args) }
func (l *sLogger) Info(msg string, args ...any)     { l.emit(slog.LevelInfo, msg, args) }
func (l *sLogger) Warn(msg string, args ...any)     { l.emit(slog.LevelWarn, msg, args) }
func (l *sLogger) Error(msg string, args ...any)    { l.emit(slog.LevelError, msg, args) }
func (l *sLogger) Critical(msg string, args ...any) { l.emit(levelCritical, msg, args) }

func (l *sLogger) With(args ...any) contracts.Logger {
	return &sLogger{Logger: l.Logger.With(args...)}
}

var oddArgsWarning sync.Once

// attrsOf pairs key/value arguments. A trailing value is kept under
// MISSING_KEY, a non-string key is renamed NON_STRING_KEY_<type>.
func attrsOf(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, (len(args)+1)/2)
	for len(args) > 0 {
		if len(args) == 1 {
			oddArgsWarning.Do(func() {
				slog.Warn("logger called with odd number of args", slog.Any("value", args[0]))
			})
			attrs = append(attrs, slog.Any("MISSING_KEY", args[0]))
			break
		}
		key, ok := args[0].(string)
		if !ok {
			key = fmt.Sprintf("NON_STRING_KEY_%T", args[0])
		}
		attrs = append(attrs, slog.Any(key, args[1]))
		args = args[2:]
	}
	return attrs
}
