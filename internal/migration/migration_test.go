package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunnerSteps(t *testing.T) {
	r := NewRunner()
	assert.Equal(t, "1.0.0", r.Version())
	assert.NotEmpty(t, r.steps)

	for _, s := range r.steps {
		assert.Contains(t, s.sql, "IF NOT EXISTS", s.name)
		assert.Contains(t, s.sql, "classifier_models", s.name)
	}
	assert.True(t, strings.Contains(createClassifierModels, "UNIQUE (name, version)"))
}

var _ Migrator = (*MigrationRunner)(nil)
