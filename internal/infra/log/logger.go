package log

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "menu-service"

// New builds the process logger. Every entry carries the service name; an
// unparsable level falls back to debug and is reported through the logger.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.InitialFields = map[string]interface{}{"service": serviceName}

	var badLevel error
	if level != "" {
		if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
			cfg.Level.SetLevel(zap.DebugLevel)
			badLevel = err
		}
	}

	l, err := cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}
	if badLevel != nil {
		l.Warn("bad LOG_LEVEL, falling back to debug", zap.String("level", level), zap.Error(badLevel))
	}
	return l, nil
}

func Must(level string) *zap.Logger {
	l, err := New(level)
	if err != nil {
		panic(err)
	}
	return l
}

// Email logs an address as a short SHA-256 fingerprint so log lines can be
// correlated without storing the address itself.
func Email(addr string) zap.Field {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(addr))))
	return zap.String("user", hex.EncodeToString(sum[:8]))
}
