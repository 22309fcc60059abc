package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/internal/config"
)

func testConfig(modelPath string) *config.Config {
	return &config.Config{
		Model:    config.ModelConfig{Source: config.ModelSourceFile, Path: modelPath, Name: "skin_cancer"},
		Batch:    config.BatchConfig{Concurrency: 2},
		LogLevel: "ERROR",
	}
}

func TestLoadClassifierFromRepoModel(t *testing.T) {
	c, err := New(testConfig(filepath.Join("..", "..", "models", "skin_cancer_model.json")))
	require.NoError(t, err)
	require.NoError(t, c.LoadClassifier(context.Background()))
	assert.Equal(t, "skin_cancer@1.0.0", c.Classifier.Name())

	svc := c.BuildService()
	assert.NoError(t, svc.Ready(context.Background()))
	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestLoadClassifierBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","intercept":0}`), 0o644))

	c, err := New(testConfig(path))
	require.NoError(t, err)
	assert.Error(t, c.LoadClassifier(context.Background()))
	assert.Nil(t, c.Classifier)
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
