package ports

import (
	"context"
	"time"

	"skinrisk/domain/model"
)

// ModelSummary describes one stored model version
type ModelSummary struct {
	Name        string    `db:"name" json:"name"`
	Version     string    `db:"version" json:"version"`
	Fingerprint string    `db:"fingerprint" json:"fingerprint"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ModelRepository stores trained classifier models
type ModelRepository interface {
	// GetActive returns the active version of a named model
	GetActive(ctx context.Context, name string) (*model.LogisticModel, error)

	// Save stores a model version and marks it active
	Save(ctx context.Context, m *model.LogisticModel) error

	// List returns every stored version of a named model, newest first
	List(ctx context.Context, name string) ([]ModelSummary, error)
}
