package log

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// Encoding selects the zap encoder.
type Encoding string

const (
	EncodingConsole Encoding = "console"
	EncodingJSON    Encoding = "json"
)

// ParseLevel maps a LogLevel onto the zap level. Unknown levels are an error.
func ParseLevel(level LogLevel) (zapcore.Level, error) {
	switch level {
	case LogDebug:
		return zap.DebugLevel, nil
	case LogInfo, "":
		return zap.InfoLevel, nil
	case LogWarn:
		return zap.WarnLevel, nil
	case LogError:
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level: %q", level)
	}
}

// NewLogger builds a zap logger writing to w.
func NewLogger(level LogLevel, encoding Encoding, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	switch encoding {
	case EncodingJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case EncodingConsole, "":
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log encoding: %q", encoding)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}

// Log writes msg at the given level with loosely typed fields.
func Log(logger *zap.Logger, level LogLevel, msg string, fields map[string]interface{}) {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	switch level {
	case LogInfo:
		logger.Info(msg, zapFields...)
	case LogWarn:
		logger.Warn(msg, zapFields...)
	case LogError:
		logger.Error(msg, zapFields...)
	case LogDebug:
		logger.Debug(msg, zapFields...)
	default:
		logger.Info(msg, zapFields...)
	}
}

// Sync flushes the logger, reporting a failure through the logger itself.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Warn("failed to sync logger", zap.Error(err))
	}
}
