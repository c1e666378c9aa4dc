package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

// Context keys for the identifiers PerfHub threads through a request:
// the request-scoped logger itself plus the ids every log line should carry.
const (
	LoggerKey       contextKey = "logger"
	RequestIDKey    contextKey = "request_id"
	DepartmentIDKey contextKey = "department_id"
	UserIDKey       contextKey = "user_id"
)

// WithContext attaches a logger to the context.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger attached to the context, or a no-op logger
// when none is attached.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// withID stores an identifier in the context and returns a logger that tags
// every entry with it. The enriched logger replaces the context one, so
// FromContext downstream picks it up too.
func withID(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	enriched := logger.With(zap.String(string(key), value))
	return WithContext(ctx, enriched), enriched
}

// WithRequestID threads the request id through the context and logger.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withID(ctx, logger, RequestIDKey, requestID)
}

// WithDepartmentID threads the acting user's department through the context
// and logger.
func WithDepartmentID(ctx context.Context, logger *zap.Logger, departmentID string) (context.Context, *zap.Logger) {
	return withID(ctx, logger, DepartmentIDKey, departmentID)
}

// WithUserID threads the acting user's id through the context and logger.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withID(ctx, logger, UserIDKey, userID)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// GetRequestID returns the request id stored in the context, or "".
func GetRequestID(ctx context.Context) string {
	return stringFromContext(ctx, RequestIDKey)
}

// GetDepartmentID returns the department id stored in the context, or "".
func GetDepartmentID(ctx context.Context) string {
	return stringFromContext(ctx, DepartmentIDKey)
}

// GetUserID returns the user id stored in the context, or "".
func GetUserID(ctx context.Context) string {
	return stringFromContext(ctx, UserIDKey)
}

// validSpanContext returns the active span context when there is a real,
// recording trace behind the context. No-op tracers yield invalid contexts
// and report false.
func validSpanContext(ctx context.Context) (trace.SpanContext, bool) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return trace.SpanContext{}, false
	}
	sc := span.SpanContext()
	return sc, sc.IsValid()
}

// GetTraceID returns the active trace id, or "" outside a valid trace.
func GetTraceID(ctx context.Context) string {
	if sc, ok := validSpanContext(ctx); ok {
		return sc.TraceID().String()
	}
	return ""
}

// GetSpanID returns the active span id, or "" outside a valid trace.
func GetSpanID(ctx context.Context) string {
	if sc, ok := validSpanContext(ctx); ok {
		return sc.SpanID().String()
	}
	return ""
}

// WithTraceContext tags the logger with trace_id and span_id when the
// context carries a valid trace; otherwise the logger comes back unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc, ok := validSpanContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// ContextLogger logs with the correlation fields the context carries:
// trace_id and span_id from the active span, plus request_id, department_id,
// and user_id when set. Handlers use logger.L(ctx).Info(...) and get
// correlated entries without assembling the fields themselves.
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L builds a ContextLogger around the logger attached to the context.
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// WithLogger builds a ContextLogger around an explicit logger, for callers
// that hold one already.
func WithLogger(ctx context.Context, logger *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: logger}
}

// With returns a child ContextLogger carrying extra fields.
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.logger.With(fields...)}
}

// contextFields collects the correlation fields present in the context.
func (cl *ContextLogger) contextFields() []zap.Field {
	fields := make([]zap.Field, 0, 5)
	if sc, ok := validSpanContext(cl.ctx); ok {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	for _, key := range []contextKey{RequestIDKey, DepartmentIDKey, UserIDKey} {
		if v := stringFromContext(cl.ctx, key); v != "" {
			fields = append(fields, zap.String(string(key), v))
		}
	}
	return fields
}

func (cl *ContextLogger) enrichedLogger() *zap.Logger {
	l := cl.logger
	if l == nil {
		l = zap.NewNop()
	}
	if fields := cl.contextFields(); len(fields) > 0 {
		l = l.With(fields...)
	}
	return l
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) {
	cl.enrichedLogger().Debug(msg, fields...)
}

func (cl *ContextLogger) Info(msg string, fields ...zap.Field) {
	cl.enrichedLogger().Info(msg, fields...)
}

func (cl *ContextLogger) Warn(msg string, fields ...zap.Field) {
	cl.enrichedLogger().Warn(msg, fields...)
}

func (cl *ContextLogger) Error(msg string, fields ...zap.Field) {
	cl.enrichedLogger().Error(msg, fields...)
}

func (cl *ContextLogger) Fatal(msg string, fields ...zap.Field) {
	cl.enrichedLogger().Fatal(msg, fields...)
}

func (cl *ContextLogger) Panic(msg string, fields ...zap.Field) {
	cl.enrichedLogger().Panic(msg, fields...)
}

// Zap returns the enriched *zap.Logger for code that takes one directly.
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.enrichedLogger()
}

// Sugar returns the enriched logger in sugared form.
func (cl *ContextLogger) Sugar() *zap.SugaredLogger {
	return cl.enrichedLogger().Sugar()
}
