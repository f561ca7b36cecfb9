package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom trace level below debug
const LevelTrace = slog.Level(-8)

var (
	mu     sync.Mutex
	level  = new(slog.LevelVar)
	format = "text"
)

var output io.Writer = os.Stderr

func init() {
	lvl, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		lvl = slog.LevelInfo
	}
	level.Set(lvl)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		format = "json"
	}
	updateHandler()
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(s) {
	case "ERROR":
		return slog.LevelError, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "TRACE":
		return LevelTrace, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}

// replaceAttr renders the custom trace level by name and normalizes timestamps
func replaceAttr(jsonFormat bool) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && len(groups) == 0 {
			if jsonFormat {
				return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return slog.String(slog.TimeKey, a.Value.Time().Format("2006-01-02 15:04:05.000-07:00"))
		}
		if a.Key == slog.LevelKey {
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
				return slog.String(slog.LevelKey, "TRACE")
			}
		}
		return a
	}
}

// updateHandler installs a fresh default logger. Callers hold mu or run in init.
func updateHandler() {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceAttr(true),
		})
	} else {
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceAttr(false),
		})
	}
	slog.SetDefault(slog.New(handler))
}

// Configure applies the level and format chosen in configuration. Empty
// values keep the current setting, so LOG_LEVEL/LOG_FORMAT still apply.
func Configure(levelName, formatName string) error {
	mu.Lock()
	defer mu.Unlock()

	if levelName != "" {
		lvl, err := parseLevel(levelName)
		if err != nil {
			return err
		}
		level.Set(lvl)
	}

	switch strings.ToLower(formatName) {
	case "":
	case "json", "text":
		format = strings.ToLower(formatName)
	default:
		return fmt.Errorf("invalid log format: %s", formatName)
	}

	updateHandler()
	return nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	updateHandler()
}

// GetLogLevel returns the current log level as a string
func GetLogLevel() string {
	switch level.Level() {
	case slog.LevelError:
		return "error"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelInfo:
		return "info"
	case slog.LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

func Logf(format string, args ...any) {
	slog.Default().Info(fmt.Sprintf(format, args...))
}

func LogError(format string, args ...any) {
	slog.Default().Error(fmt.Sprintf(format, args...))
}

func LogWarn(format string, args ...any) {
	slog.Default().Warn(fmt.Sprintf(format, args...))
}

func LogDebug(format string, args ...any) {
	slog.Default().Debug(fmt.Sprintf(format, args...))
}

func buildArgs(component string, fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2+2)
	args = append(args, "component", component)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}

func LogInfoWithFields(component, message string, fields map[string]any) {
	slog.Default().Info(message, buildArgs(component, fields)...)
}

func LogDebugWithFields(component, message string, fields map[string]any) {
	slog.Default().Debug(message, buildArgs(component, fields)...)
}

func LogErrorWithFields(component, message string, fields map[string]any) {
	slog.Default().Error(message, buildArgs(component, fields)...)
}

func LogWarnWithFields(component, message string, fields map[string]any) {
	slog.Default().Warn(message, buildArgs(component, fields)...)
}

func LogTraceWithFields(component, message string, fields map[string]any) {
	slog.Default().Log(context.Background(), LevelTrace, message, buildArgs(component, fields)...)
}
