// Package logging wraps log/slog with the server's event vocabulary and
// request-ID plumbing. InitLogger installs the process-wide logger; the
// package-level helpers and event functions all write through it.
package logging

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Level selects the minimum severity the logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Format selects the handler encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// ContextKey is the type used for context values owned by this package.
type ContextKey string

// RequestIDKey carries the per-request ID through a request's context.
const RequestIDKey ContextKey = "request_id"

var defaultLogger *slog.Logger

func init() {
	InitLogger(LevelInfo, FormatJSON)
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// rfc3339Time rewrites the handler's time attribute to RFC3339 so JSON and
// text output carry the same timestamp shape.
func rfc3339Time(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
	}
	return a
}

// InitLogger replaces the process-wide logger. It reads os.Stdout at call
// time, so tests may redirect output before calling it.
func InitLogger(level Level, format Format) {
	opts := &slog.HandlerOptions{
		Level:       level.slogLevel(),
		ReplaceAttr: rfc3339Time,
	}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the process-wide logger.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// WithRequestID stores a request ID in ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// LoggerFromContext returns the logger, annotated with the context's
// request ID when one is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if id := GetRequestID(ctx); id != "" {
		return defaultLogger.With("request_id", id)
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

func DebugContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Debug(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Info(msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Warn(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Error(msg, args...)
}

// Event helpers. Each emits one named event with a fixed leading field set;
// callers append extra key-value pairs through args.

// HTTPRequest records a completed request.
func HTTPRequest(method, path, remoteAddr string, statusCode int, duration time.Duration, args ...any) {
	defaultLogger.Info("http_request", append([]any{
		"method", method,
		"path", path,
		"remote_addr", remoteAddr,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	}, args...)...)
}

// HTTPRequestContext is HTTPRequest carrying the context's request ID.
func HTTPRequestContext(ctx context.Context, method, path, remoteAddr string, statusCode int, duration time.Duration, args ...any) {
	LoggerFromContext(ctx).Info("http_request", append([]any{
		"method", method,
		"path", path,
		"remote_addr", remoteAddr,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	}, args...)...)
}

// VersionLoaded records a Bible version finishing its load.
func VersionLoaded(key string, books, verses int, args ...any) {
	defaultLogger.Info("version_loaded", append([]any{
		"version", key,
		"books", books,
		"verses", verses,
	}, args...)...)
}

// ParseFailure records a reference the pipeline rejected.
func ParseFailure(reference, kind string, args ...any) {
	defaultLogger.Info("parse_failure", append([]any{
		"reference", reference,
		"error_kind", kind,
	}, args...)...)
}

// WebSocketEvent records hub and client traffic.
func WebSocketEvent(event string, clientCount int, args ...any) {
	defaultLogger.Info("websocket_event", append([]any{
		"event", event,
		"client_count", clientCount,
	}, args...)...)
}

// ServerStartup records a listener coming up.
func ServerStartup(serverType, protocol string, port int, args ...any) {
	defaultLogger.Info("server_startup", append([]any{
		"server_type", serverType,
		"protocol", protocol,
		"port", port,
	}, args...)...)
}

// SecurityEvent records auth, CORS, and related configuration decisions at
// warn level so they stand out in production logs.
func SecurityEvent(event, component string, args ...any) {
	defaultLogger.Warn("security_event", append([]any{
		"event", event,
		"component", component,
	}, args...)...)
}
