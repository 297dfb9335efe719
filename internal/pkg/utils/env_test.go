package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("Missing Key Uses Default", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("TLHLTH_TEST_MISSING", "fallback"))
		assert.Equal(t, 7, GetEnvInt("TLHLTH_TEST_MISSING", 7))
	})

	t.Run("Parses Typed Values", func(t *testing.T) {
		t.Setenv("TLHLTH_TEST_INT", "42")
		t.Setenv("TLHLTH_TEST_INT64", "10485760")
		t.Setenv("TLHLTH_TEST_BOOL", "true")
		t.Setenv("TLHLTH_TEST_DURATION", "90s")

		assert.Equal(t, 42, GetEnvInt("TLHLTH_TEST_INT", 0))
		assert.Equal(t, int64(10485760), GetEnvInt64("TLHLTH_TEST_INT64", 0))
		assert.True(t, GetEnvBool("TLHLTH_TEST_BOOL", false))
		assert.Equal(t, 90*time.Second, GetEnvDuration("TLHLTH_TEST_DURATION", time.Second))
	})

	t.Run("Malformed Value Falls Back", func(t *testing.T) {
		t.Setenv("TLHLTH_TEST_BAD_INT", "forty-two")
		t.Setenv("TLHLTH_TEST_BAD_DURATION", "soon")

		assert.Equal(t, 3, GetEnvInt("TLHLTH_TEST_BAD_INT", 3))
		assert.Equal(t, time.Minute, GetEnvDuration("TLHLTH_TEST_BAD_DURATION", time.Minute))
	})
}
