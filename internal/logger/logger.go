package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface defines the logger interface.
type Interface interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(fields ...any) Interface
	// Structured logging helpers
	WithError(err error) Interface
	WithComponent(component string) Interface
	WithDuration(duration time.Duration) Interface
	WithRunID(runID string) Interface
	WithURL(url string) Interface
	// Sync flushes buffered entries; call it before the process exits.
	Sync() error
}

// Logger implements the Interface on top of zap.
type Logger struct {
	zapLogger *zap.Logger
}

var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

// New creates a new logger instance from config. A nil config uses defaults.
func New(config *Config) (Interface, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.Level == "" {
		cfg.Level = DefaultLevel
	}
	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	level, ok := logLevels[strings.ToLower(string(cfg.Level))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, cfg.Level)
	}

	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutput, cfg.Output)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if cfg.Development {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
		}
		encoderConfig.ConsoleSeparator = " | "
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, cfg.Encoding)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	return &Logger{zapLogger: zap.New(core, opts...)}, nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...any) {
	l.zapLogger.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...any) {
	l.zapLogger.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...any) {
	l.zapLogger.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...any) {
	l.zapLogger.Error(msg, toZapFields(fields)...)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.zapLogger.Fatal(msg, toZapFields(fields)...)
}

// With creates a new logger with the given fields.
func (l *Logger) With(fields ...any) Interface {
	return &Logger{zapLogger: l.zapLogger.With(toZapFields(fields)...)}
}

// WithError adds an error to the logger.
func (l *Logger) WithError(err error) Interface {
	return l.With(fieldError, err)
}

// WithComponent adds a component name to the logger.
func (l *Logger) WithComponent(component string) Interface {
	return l.With(fieldComponent, component)
}

// WithDuration adds a duration to the logger.
func (l *Logger) WithDuration(duration time.Duration) Interface {
	return l.With(fieldDuration, duration)
}

// WithRunID tags every entry with the crawl run identifier.
func (l *Logger) WithRunID(runID string) Interface {
	return l.With(fieldRunID, runID)
}

// WithURL adds a page URL to the logger.
func (l *Logger) WithURL(url string) Interface {
	return l.With(fieldURL, url)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// toZapFields converts alternating key/value pairs (or ready zap.Fields) to zap fields.
// A trailing key without a value and non-string keys are dropped.
func toZapFields(fields []any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields)/2+1)
	for i := 0; i < len(fields); i++ {
		switch field := fields[i].(type) {
		case zap.Field:
			zapFields = append(zapFields, field)
		case string:
			if i+1 >= len(fields) {
				continue
			}
			if err, ok := fields[i+1].(error); ok {
				zapFields = append(zapFields, zap.NamedError(field, err))
			} else {
				zapFields = append(zapFields, zap.Any(field, fields[i+1]))
			}
			i++
		}
	}

	return zapFields
}
