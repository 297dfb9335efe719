package utils

import (
	"context"

	"telehealth-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Security event severities understood by LogSecurityEvent.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// LogBusinessEvent records a state change in the domain (an appointment
// booked, a payment settled) under a stable event name so dashboards can
// count them.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	logger.Info("Business event", eventFields(event, requestID, fields)...)
}

// LogSecurityEvent records rejected credentials, signatures and privilege
// changes. High severity events go out at error level.
func LogSecurityEvent(logger *zap.Logger, event string, requestID string, severity string, fields ...zap.Field) {
	level := zapcore.WarnLevel
	if severity == SeverityHigh {
		level = zapcore.ErrorLevel
	}

	allFields := append(eventFields(event, requestID, fields), zap.String("severity", severity))
	if ce := logger.Check(level, "Security event"); ce != nil {
		ce.Write(allFields...)
	}
}

func eventFields(event, requestID string, fields []zap.Field) []zap.Field {
	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event),
	)
	return append(allFields, fields...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}
