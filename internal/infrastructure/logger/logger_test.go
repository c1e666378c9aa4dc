package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfig_ZapLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{Level: tt.level}
			assert.Equal(t, tt.expected, cfg.zapLevel())
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfhub.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("score verified", zap.String("role", "manager"))
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "score verified", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "manager", entry["role"])
	assert.NotEmpty(t, entry["time"])
	assert.NotEmpty(t, entry["caller"])
}

func TestNew_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfhub.log")

	log, err := New(&Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("weight allocation computed")
	log.Warn("weight budget nearly exhausted")
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "weight allocation computed")
	assert.Contains(t, string(data), "weight budget nearly exhausted")
}

func TestNew_ConsoleFormat(t *testing.T) {
	log, err := New(&Config{Level: "debug", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestConfig_Sink(t *testing.T) {
	t.Run("standard streams", func(t *testing.T) {
		for _, output := range []string{"stdout", "stderr", "STDOUT", ""} {
			cfg := &Config{Output: output}
			assert.NotNil(t, cfg.sink())
		}
	})

	t.Run("appends to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "perfhub.log")
		cfg := &Config{Output: path}

		sink := cfg.sink()
		require.NotNil(t, sink)

		_, err := sink.Write([]byte("first\n"))
		require.NoError(t, err)
		_, err = cfg.sink().Write([]byte("second\n"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(data))
	})

	t.Run("unopenable path falls back to stdout", func(t *testing.T) {
		cfg := &Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "perfhub.log")}
		assert.NotNil(t, cfg.sink())
	})
}

func TestConfig_Encoder(t *testing.T) {
	t.Run("json encodes the configured time layout", func(t *testing.T) {
		cfg := &Config{Format: "json", TimeFormat: "2006-01-02"}
		enc := cfg.encoder()

		buf, err := enc.EncodeEntry(zapcore.Entry{
			Level:   zapcore.InfoLevel,
			Time:    time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			Message: "indicator saved",
		}, nil)
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		ts, ok := entry["time"].(string)
		require.True(t, ok)
		assert.Len(t, strings.TrimSpace(ts), len("2006-01-02"))
	})

	t.Run("console encoder is line-oriented", func(t *testing.T) {
		cfg := &Config{Format: "console"}
		enc := cfg.encoder()

		buf, err := enc.EncodeEntry(zapcore.Entry{
			Level:   zapcore.WarnLevel,
			Message: "indicator saved",
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "indicator saved")
		assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	})
}
