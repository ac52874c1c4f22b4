package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expdes/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, "tukey", cfg.PostHoc)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXPDES_ALPHA", "0.1")
	t.Setenv("EXPDES_POSTHOC", "ttest")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.Alpha)
	assert.Equal(t, "ttest", cfg.PostHoc)
}

func TestLoadRejectsBadAlpha(t *testing.T) {
	for _, raw := range []string{"0", "1", "1.5", "-0.05", "lots"} {
		t.Setenv("EXPDES_ALPHA", raw)
		_, err := Load()
		require.Error(t, err, "alpha %q", raw)
	}

	t.Setenv("EXPDES_ALPHA", "0.5")
	_, err := Load()
	assert.NoError(t, err)
}

func TestBadAlphaCode(t *testing.T) {
	t.Setenv("EXPDES_ALPHA", "1.5")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
