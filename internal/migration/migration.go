package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"skinrisk/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	steps   []step
}

type step struct {
	name string
	sql  string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		steps: []step{
			{name: "classifier_models table", sql: createClassifierModels},
			{name: "classifier_models indexes", sql: createClassifierModelIndexes},
		},
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, s := range r.steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return errors.Wrap(err, "failed to create "+s.name)
		}
	}
	return nil
}

const createClassifierModels = `
	CREATE TABLE IF NOT EXISTS classifier_models (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		version VARCHAR(50) NOT NULL,
		intercept DOUBLE PRECISION NOT NULL,
		coefficients JSONB NOT NULL,
		imputation JSONB NOT NULL,
		fingerprint VARCHAR(64) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT false,
		trained_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (name, version)
	)
`

const createClassifierModelIndexes = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_classifier_models_active
		ON classifier_models (name) WHERE is_active;
	CREATE INDEX IF NOT EXISTS idx_classifier_models_name_created
		ON classifier_models (name, created_at DESC)
`
