package utils

import (
	"context"
	"testing"

	"telehealth-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogBusinessEvent_CarriesEventAndRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	LogBusinessEvent(zap.New(core), "appointment_created", "req-1", zap.String(constvars.LoggingAppointmentIDKey, "appt-1"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "appointment_created", fields[constvars.LoggingEventKey])
	assert.Equal(t, "req-1", fields[constvars.LoggingRequestIDKey])
	assert.Equal(t, "appt-1", fields[constvars.LoggingAppointmentIDKey])
}

func TestLogSecurityEvent_LevelFollowsSeverity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	LogSecurityEvent(logger, "login_failed", "req-1", SeverityMedium)
	LogSecurityEvent(logger, "token_forged", "req-2", SeverityHigh)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
	assert.Equal(t, SeverityHigh, logs.All()[1].ContextMap()["severity"])
}

func TestGetRequestID(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))

	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-9")
	assert.Equal(t, "req-9", GetRequestID(ctx))
}
