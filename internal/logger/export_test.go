package logger

import "go.uber.org/zap"

// ToZapFields exposes toZapFields for tests.
func ToZapFields(fields []any) []zap.Field {
	return toZapFields(fields)
}

// NewFromZap wraps z, so tests can observe entries.
func NewFromZap(z *zap.Logger) Interface {
	return &Logger{zapLogger: z}
}
