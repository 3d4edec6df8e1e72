package logger

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeGame    LogType = "GME"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

type CustomHandler struct {
	opts      *slog.HandlerOptions
	startTime time.Time
	attrs     []slog.Attr
	groups    []string
}

func NewHandler() *CustomHandler {
	return &CustomHandler{
		opts:      &slog.HandlerOptions{Level: slog.LevelDebug},
		startTime: time.Now(),
		attrs:     make([]slog.Attr, 0),
		groups:    make([]string, 0),
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CustomHandler{
		opts:      h.opts,
		startTime: h.startTime,
		attrs:     append(h.attrs, attrs...),
		groups:    h.groups,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	return &CustomHandler{
		opts:      h.opts,
		startTime: h.startTime,
		attrs:     h.attrs,
		groups:    append(h.groups, name),
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	timestamp := time.Now().Format("15:04:05")

	var levelColor, levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelColor = colorPurple
		levelText = "DEBUG"
	case slog.LevelInfo:
		levelColor = colorGreen
		levelText = "INFO"
	case slog.LevelWarn:
		levelColor = colorYellow
		levelText = "WARN"
	case slog.LevelError:
		levelColor = colorRed
		levelText = "ERROR"
	}

	logType := getLogType(&r)
	userName := getUserName(&r)
	cmdName := getCommandName(&r)
	errorDetails := getErrorDetails(&r)
	errorLocation := getErrorLocation(&r)

	message := r.Message
	if r.Level == slog.LevelError {
		if errorLocation != "" {
			message = fmt.Sprintf("%s (%s)", message, errorLocation)
		}
		if errorDetails != "" {
			message = fmt.Sprintf("%s: %s", message, errorDetails)
		}
	}

	if cmdName != "" && userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmdName, userName)
	}

	var attrsStr string
	r.Attrs(func(a slog.Attr) bool {
		if !isInternalAttr(a.Key) {
			attrsStr += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		}
		return true
	})
	for _, attr := range h.attrs {
		if !isInternalAttr(attr.Key) {
			attrsStr += fmt.Sprintf(" %s=%v", attr.Key, attr.Value)
		}
	}

	fmt.Printf("%s[ChampFut] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		timestamp,
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		attrsStr,
		colorReset,
	)

	return nil
}

func shouldSkipLog(r *slog.Record) bool {
	// Gateway and rate limit chatter from disgo's debug logging.
	skippedMessages := []string{
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
		"sending identify command name-gateway",
		"ready message received name",
		"rate limit response headers",
		"sending heartbeat",
	}

	for _, skip := range skippedMessages {
		if strings.Contains(strings.ToLower(r.Message), skip) {
			return true
		}
	}

	return false
}

func getLogType(r *slog.Record) LogType {
	var logType LogType = TypeSystem
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "type" {
			switch a.Value.String() {
			case "cmd":
				logType = TypeCommand
			case "db":
				logType = TypeDB
			case "game":
				logType = TypeGame
			case "error":
				logType = TypeError
			}
			return false
		}
		return true
	})
	return logType
}

func getSourceLocation() (string, int) {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "error", "error_location":
		return true
	}
	return false
}

func getUserName(r *slog.Record) string {
	var name string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "user_name" {
			name = a.Value.String()
			return false
		}
		return true
	})
	return name
}

func getCommandName(r *slog.Record) string {
	var name string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "name" {
			name = a.Value.String()
			return false
		}
		return true
	})
	return name
}

func getErrorDetails(r *slog.Record) string {
	var details string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "error" {
			details = fmt.Sprintf("%v", a.Value)
			return false
		}
		return true
	})
	return details
}

func getErrorLocation(r *slog.Record) string {
	var location string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "error_location" {
			location = a.Value.String()
			return false
		}
		return true
	})
	if location == "" && r.Level == slog.LevelError {
		if file, line := getSourceLocation(); file != "" {
			location = fmt.Sprintf("%s:%d", file, line)
		}
	}
	return location
}
