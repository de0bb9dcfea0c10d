package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "custom_value")
	assert.Equal(t, "custom_value", LoadEnvString("TEST_STRING", "default_value"))

	assert.Equal(t, "default_value", LoadEnvString("TEST_STRING_UNSET", "default_value"))

	// 空文字列はデフォルト扱い
	t.Setenv("TEST_EMPTY", "")
	assert.Equal(t, "default_value", LoadEnvString("TEST_EMPTY", "default_value"))
}

func TestLoadEnvWithFallback_ValidValue(t *testing.T) {
	t.Setenv("TEST_CRON", "0 6 * * *")

	result := LoadEnvWithFallback("TEST_CRON", "30 5 * * *", ValidateCronSchedule)

	assert.Equal(t, "0 6 * * *", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_UnsetUsesDefaultSilently(t *testing.T) {
	result := LoadEnvWithFallback("TEST_CRON_UNSET", "30 5 * * *", ValidateCronSchedule)

	assert.Equal(t, "30 5 * * *", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("TEST_CRON", "not a schedule")

	result := LoadEnvWithFallback("TEST_CRON", "30 5 * * *", ValidateCronSchedule)

	assert.Equal(t, "30 5 * * *", result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "TEST_CRON")
	assert.Contains(t, result.Warnings[0], "falling back to default")
}

func TestLoadEnvWithFallback_NilValidator(t *testing.T) {
	t.Setenv("TEST_ANY", "whatever goes")

	result := LoadEnvWithFallback("TEST_ANY", "default", nil)

	assert.Equal(t, "whatever goes", result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_Timezone(t *testing.T) {
	t.Setenv("TEST_TZ", "Mars/Olympus_Mons")

	result := LoadEnvWithFallback("TEST_TZ", "Asia/Tokyo", ValidateTimezone)

	assert.Equal(t, "Asia/Tokyo", result.Value)
	assert.True(t, result.FallbackApplied)
}

func TestLoadEnvDuration_ValidValue(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "90s")

	result := LoadEnvDuration("TEST_TIMEOUT", 2*time.Minute, nil)

	assert.Equal(t, 90*time.Second, result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration_ParseErrorFallsBack(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "ninety seconds")

	result := LoadEnvDuration("TEST_TIMEOUT", 2*time.Minute, nil)

	assert.Equal(t, 2*time.Minute, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Len(t, result.Warnings, 1)
}

func TestLoadEnvDuration_ValidatorRejectsFallsBack(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "5h")

	result := LoadEnvDuration("TEST_TIMEOUT", 30*time.Minute, func(d time.Duration) error {
		return ValidateDuration(d, 1*time.Minute, 2*time.Hour)
	})

	assert.Equal(t, 30*time.Minute, result.Value)
	assert.True(t, result.FallbackApplied)
}

func TestLoadEnvDuration_Unset(t *testing.T) {
	result := LoadEnvDuration("TEST_TIMEOUT_UNSET", 2*time.Minute, nil)

	assert.Equal(t, 2*time.Minute, result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvInt_ValidValue(t *testing.T) {
	t.Setenv("TEST_PORT", "8080")

	result := LoadEnvInt("TEST_PORT", 9090, func(v int) error {
		return ValidateIntRange(v, 1024, 65535)
	})

	assert.Equal(t, 8080, result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvInt_ParseErrorFallsBack(t *testing.T) {
	t.Setenv("TEST_PORT", "eight-oh-eighty")

	result := LoadEnvInt("TEST_PORT", 9090, nil)

	assert.Equal(t, 9090, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "invalid integer format")
}

func TestLoadEnvInt_OutOfRangeFallsBack(t *testing.T) {
	t.Setenv("TEST_PORT", "70000")

	result := LoadEnvInt("TEST_PORT", 9090, func(v int) error {
		return ValidateIntRange(v, 1024, 65535)
	})

	assert.Equal(t, 9090, result.Value)
	assert.True(t, result.FallbackApplied)
}

func TestLoadEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		defaultValue bool
		want         bool
		fallback     bool
	}{
		{name: "true word", raw: "true", defaultValue: false, want: true},
		{name: "numeric one", raw: "1", defaultValue: false, want: true},
		{name: "false word", raw: "false", defaultValue: true, want: false},
		{name: "capital T", raw: "T", defaultValue: false, want: true},
		{name: "garbage falls back", raw: "yes please", defaultValue: true, want: true, fallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.raw)

			result := LoadEnvBool("TEST_BOOL", tt.defaultValue)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvBool_Unset(t *testing.T) {
	result := LoadEnvBool("TEST_BOOL_UNSET", true)

	assert.Equal(t, true, result.Value)
	assert.False(t, result.FallbackApplied)
}
