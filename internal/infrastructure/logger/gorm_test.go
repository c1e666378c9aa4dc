package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func traceQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		gl, _ := newObservedGormLogger(gormlogger.Info)

		assert.Equal(t, gormlogger.Info, gl.logLevel)
		assert.Equal(t, defaultSlowThreshold, gl.slowThreshold)
		assert.True(t, gl.ignoreNotFoundErr)
	})

	t.Run("options override defaults", func(t *testing.T) {
		gl, _ := newObservedGormLogger(gormlogger.Info,
			WithSlowThreshold(500*time.Millisecond),
			WithIgnoreRecordNotFoundError(false),
		)

		assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
		assert.False(t, gl.ignoreNotFoundErr)
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)
	clone := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	cloned, ok := clone.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, cloned.logLevel)
}

func TestGormLogger_LeveledMessages(t *testing.T) {
	t.Run("formats printf-style arguments", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		gl.Info(context.Background(), "migrated %d indicators", 7)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "migrated 7 indicators", logs[0].Message)
	})

	t.Run("warn and error respect the configured level", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)

		gl.Warn(context.Background(), "suppressed")
		gl.Error(context.Background(), "reported")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("silent suppresses everything", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Silent)
		gl.Info(context.Background(), "quiet")
		gl.Trace(context.Background(), time.Now(), traceQuery("SELECT 1", 0), nil)

		assert.Empty(t, recorded.All())
	})
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed query logs at error with the statement", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), traceQuery("INSERT INTO score_records", 0), errors.New("deadlock detected"))

		entries := recorded.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "INSERT INTO score_records", entries[0].ContextMap()["sql"])
	})

	t.Run("expected misses are not logged", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), traceQuery("SELECT * FROM indicators WHERE id = $1", 0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("misses are logged when not ignored", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(ctx, time.Now(), traceQuery("SELECT * FROM indicators WHERE id = $1", 0), gormlogger.ErrRecordNotFound)

		assert.Len(t, recorded.FilterMessage("SQL Error").All(), 1)
	})

	t.Run("slow query logs at warn with the threshold", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(ctx, time.Now().Add(-time.Second), traceQuery("SELECT * FROM score_records", 1200), nil)

		entries := recorded.FilterMessage("Slow SQL").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Contains(t, entries[0].ContextMap(), "threshold")
	})

	t.Run("routine query logs at debug", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		gl.Trace(ctx, time.Now(), traceQuery("SELECT * FROM departments", 3), nil)

		entries := recorded.FilterMessage("SQL Query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
	})

	t.Run("tags the request id when the query ran inside a request", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		reqCtx := context.WithValue(ctx, RequestIDKey, "req-7")
		gl.Trace(reqCtx, time.Now(), traceQuery("SELECT * FROM users", 1), nil)

		entries := recorded.FilterMessage("SQL Query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"verbose", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}

var _ gormlogger.Interface = (*GormLogger)(nil)
