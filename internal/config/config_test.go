package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "STRICT_INPUT", "MODEL_SOURCE", "MODEL_PATH", "MODEL_NAME",
		"DATABASE_URL", "BATCH_CONCURRENCY", "OPS_PORT", "OPS_ENABLED", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.False(t, cfg.Server.StrictInput)
	assert.Equal(t, ModelSourceFile, cfg.Model.Source)
	assert.Equal(t, "./models/skin_cancer_model.json", cfg.Model.Path)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.True(t, cfg.Ops.Enabled)
	assert.Equal(t, "6060", cfg.Ops.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STRICT_INPUT", "true")
	t.Setenv("MODEL_SOURCE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/skinrisk")
	t.Setenv("BATCH_CONCURRENCY", "2")
	t.Setenv("OPS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.Server.StrictInput)
	assert.Equal(t, ModelSourcePostgres, cfg.Model.Source)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.False(t, cfg.Ops.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"postgres without url": {"MODEL_SOURCE": "postgres"},
		"unknown source":       {"MODEL_SOURCE": "s3"},
		"zero concurrency":     {"BATCH_CONCURRENCY": "0"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestUnparseableNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("BATCH_CONCURRENCY", "lots")
	t.Setenv("OPS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.True(t, cfg.Ops.Enabled)
}
