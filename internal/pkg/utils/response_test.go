package utils

import (
	"errors"
	"net/http/httptest"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildErrorResponse(t *testing.T) {
	t.Run("Custom Error Keeps Status And Message", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		rec := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrInvalidStatusTransition(nil, "REJECTED", "APPROVED"))

		assert.Equal(t, constvars.StatusBadRequest, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "cannot change status from REJECTED to APPROVED", body["message"])
		assert.NotEmpty(t, body["dev_message"])
	})

	t.Run("Dev Message Hidden In Production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		rec := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrPostgresDBFindData(errors.New("connection refused")))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		_, hasDev := body["dev_message"]
		assert.False(t, hasDev)
	})

	t.Run("Plain Error Is Internal", func(t *testing.T) {
		rec := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rec, errors.New("boom"))

		assert.Equal(t, constvars.StatusInternalServerError, rec.Code)
	})
}

func TestBuildPaginationResponse(t *testing.T) {
	first := BuildPaginationResponse(45, 1, 20, "/api/v1/appointments")
	assert.Equal(t, "/api/v1/appointments?page=2&page_size=20", first.NextURL)
	assert.Empty(t, first.PrevURL)

	last := BuildPaginationResponse(45, 3, 20, "/api/v1/appointments")
	assert.Empty(t, last.NextURL)
	assert.Equal(t, "/api/v1/appointments?page=2&page_size=20", last.PrevURL)

	exact := BuildPaginationResponse(40, 2, 20, "/api/v1/appointments")
	assert.Empty(t, exact.NextURL)
}
