package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the structured logger injected into domain services.
func NewZapLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var zcfg zap.Config
	if strings.ToLower(cfg.Format) == "text" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel(cfg.Level))
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build()
}

func zapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// OrderLogger writes order lifecycle lines tagged with the store order code.
type OrderLogger struct {
	log *zap.Logger
}

// NewOrderLogger creates an order logger.
func NewOrderLogger(log *zap.Logger) *OrderLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderLogger{log: log.Named("order")}
}

// OrderInfo logs an info line for the order identified by code.
func (l *OrderLogger) OrderInfo(code, message string, fields ...zap.Field) {
	l.log.Info(message, append([]zap.Field{zap.String("order_code", code)}, fields...)...)
}

// OrderError logs an error line for the order identified by code.
func (l *OrderLogger) OrderError(code, message string, err error, fields ...zap.Field) {
	l.log.Error(message, append([]zap.Field{zap.String("order_code", code), zap.Error(err)}, fields...)...)
}
