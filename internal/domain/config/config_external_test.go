package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodflow/topiccore/internal/domain/config"
)

// TestConfig_WithDefaults_FillsZeroValues verifies unset fields fall back
// to Default()'s values.
func TestConfig_WithDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()

	cfg, err := config.Config{Namespace: "/robot1"}.WithDefaults()
	require.NoError(t, err)

	assert.Equal(t, "/robot1", cfg.Namespace)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 65536, cfg.DefaultBuffSize)
}

// TestConfig_WithDefaults_ParsesHumanBuffSize verifies DefaultBuffSizeHuman
// overrides DefaultBuffSize via shared.ParseSize.
func TestConfig_WithDefaults_ParsesHumanBuffSize(t *testing.T) {
	t.Parallel()

	cfg, err := config.Config{DefaultBuffSizeHuman: "128KB"}.WithDefaults()
	require.NoError(t, err)

	assert.Equal(t, 128*1024, cfg.DefaultBuffSize)
}

// TestConfig_WithDefaults_RejectsInvalidHumanBuffSize verifies a malformed
// DefaultBuffSizeHuman value surfaces as an error rather than silently
// falling back to the default.
func TestConfig_WithDefaults_RejectsInvalidHumanBuffSize(t *testing.T) {
	t.Parallel()

	_, err := config.Config{DefaultBuffSizeHuman: "not-a-size"}.WithDefaults()
	require.Error(t, err)
}
