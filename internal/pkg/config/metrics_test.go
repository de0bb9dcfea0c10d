package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigMetrics_Registration(t *testing.T) {
	metrics := NewConfigMetrics("test_component_registration")

	assert.NotNil(t, metrics.LoadTimestamp)
	assert.NotNil(t, metrics.ValidationErrorsTotal)
	assert.NotNil(t, metrics.FallbacksTotal)
	assert.NotNil(t, metrics.FallbackActive)
	assert.Equal(t, "test_component_registration", metrics.componentName)
}

func TestRecordLoadTimestamp_UpdatesMetric(t *testing.T) {
	metrics := NewConfigMetrics("test_load_timestamp")

	metrics.RecordLoadTimestamp()

	assert.Greater(t, testutil.ToFloat64(metrics.LoadTimestamp), float64(0))
}

func TestRecordValidationError_TracksPerField(t *testing.T) {
	metrics := NewConfigMetrics("test_validation_fields")

	metrics.RecordValidationError("cron_schedule")
	metrics.RecordValidationError("timezone")
	metrics.RecordValidationError("cron_schedule")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("timezone")))
}

func TestRecordFallback_TracksPerField(t *testing.T) {
	metrics := NewConfigMetrics("test_fallback_fields")

	metrics.RecordFallback("refresh_timeout")
	metrics.RecordFallback("timezone")
	metrics.RecordFallback("refresh_timeout")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("refresh_timeout")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("timezone")))
}

func TestSetFallbackActive_Toggle(t *testing.T) {
	metrics := NewConfigMetrics("test_fallback_toggle")

	metrics.SetFallbackActive(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.FallbackActive))

	metrics.SetFallbackActive(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FallbackActive))

	metrics.SetFallbackActive(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.FallbackActive))
}
