package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_DURATION", "1m30s")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_EMPTY", "")
	t.Setenv("TEST_SLICE", "a, ,b ,c")

	assert.Equal(t, 42, GetEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("TEST_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvAsInt("TEST_UNSET_INT", 7))
	assert.Equal(t, uint64(42), GetEnvAsUint64("TEST_INT", 1))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("TEST_DURATION", time.Second))
	assert.False(t, GetEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, "fallback", GetEnvAsString("TEST_EMPTY", "fallback"))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, GetEnvAsSlice("TEST_EMPTY", []string{"x"}))
}

func TestMissingEnv(t *testing.T) {
	t.Setenv("TEST_SET", "value")
	t.Setenv("TEST_BLANK", "")

	assert.Equal(t, []string{"TEST_BLANK", "TEST_NEVER_SET"}, MissingEnv("TEST_SET", "TEST_BLANK", "TEST_NEVER_SET"))
	assert.Empty(t, MissingEnv("TEST_SET"))
}
