// Package logger wires zap into the places PerfHub emits logs from: the
// application itself, the gin request path, and the gorm SQL layer.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultTimeLayout is used when the config leaves TimeFormat empty.
const defaultTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Config controls how logs are emitted. Console format is meant for local
// development; deployments run json.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout, stderr, or a file path
	TimeFormat string // layout for the time field
}

// New builds a zap logger from the configuration. A bad log section never
// keeps the service down: unknown levels fall back to info and an unopenable
// output file falls back to stdout.
func New(cfg *Config) (*zap.Logger, error) {
	core := zapcore.NewCore(cfg.encoder(), cfg.sink(), cfg.zapLevel())
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// Sync flushes buffered entries; call it on shutdown.
func Sync(log *zap.Logger) error {
	return log.Sync()
}

func (c *Config) zapLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (c *Config) encoder() zapcore.Encoder {
	layout := c.TimeFormat
	if layout == "" {
		layout = defaultTimeLayout
	}

	enc := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(layout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if strings.EqualFold(c.Format, "console") {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(enc)
	}
	return zapcore.NewJSONEncoder(enc)
}

func (c *Config) sink() zapcore.WriteSyncer {
	switch strings.ToLower(c.Output) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	default:
		file, err := os.OpenFile(c.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zapcore.AddSync(os.Stdout)
		}
		return zapcore.AddSync(file)
	}
}
