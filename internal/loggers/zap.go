package loggers

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Sync() error
}

// NewLogger builds the production JSON logger. An empty level means debug.
func NewLogger(logLevel string) (Logger, error) {
	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	if len(logLevel) > 0 {
		parsedLevel, err := zap.ParseAtomicLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %s: %w", logLevel, err)
		}
		level = parsedLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.Level = level
	baseLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return baseLogger.Sugar(), nil
}

func NewTestLogger() Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"
	return zap.Must(cfg.Build()).Sugar()
}
