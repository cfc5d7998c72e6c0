package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldEmployeeID = "employee_id"
	FieldPosition   = "position"
	FieldTarget     = "target_position"
	FieldTable      = "table"
	FieldRequestID  = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op
// logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// EmployeeFields describes the employee a query is about.
func EmployeeFields(id, position string) []zap.Field {
	return StringFields(
		StringField{Key: FieldEmployeeID, Value: id},
		StringField{Key: FieldPosition, Value: position},
	)
}

// WithEmployee attaches the employee fields to the provided logger.
func WithEmployee(logger *zap.Logger, id, position string) *zap.Logger {
	return WithFields(logger, EmployeeFields(id, position)...)
}
