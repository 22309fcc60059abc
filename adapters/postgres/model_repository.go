package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"skinrisk/domain/core"
	"skinrisk/domain/model"
	"skinrisk/internal/errors"
	"skinrisk/ports"
)

// pq code for unique_violation
const uniqueViolation = "23505"

// modelRow is a classifier_models row
type modelRow struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Version      string     `db:"version"`
	Intercept    float64    `db:"intercept"`
	Coefficients []byte     `db:"coefficients"`
	Imputation   []byte     `db:"imputation"`
	Fingerprint  string     `db:"fingerprint"`
	IsActive     bool       `db:"is_active"`
	TrainedAt    *time.Time `db:"trained_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

// ModelRepositoryImpl implements ModelRepository for PostgreSQL
type ModelRepositoryImpl struct {
	db *sqlx.DB
}

// NewModelRepository creates a new PostgreSQL model repository
func NewModelRepository(db *sqlx.DB) ports.ModelRepository {
	return &ModelRepositoryImpl{db: db}
}

// GetActive returns the active version of a named model
func (r *ModelRepositoryImpl) GetActive(ctx context.Context, name string) (*model.LogisticModel, error) {
	var row modelRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, version, intercept, coefficients, imputation, fingerprint, is_active, trained_at, created_at
		FROM classifier_models
		WHERE name = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`, name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrModelNotFound, name)
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load model", err)
	}
	return row.toModel()
}

// Save stores a model version and makes it the only active one for its name
func (r *ModelRepositoryImpl) Save(ctx context.Context, m *model.LogisticModel) error {
	row, err := newModelRow(m)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE classifier_models SET is_active = false WHERE name = $1 AND is_active = true
	`, row.Name); err != nil {
		return errors.DatabaseError("failed to deactivate previous model", err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO classifier_models (id, name, version, intercept, coefficients, imputation, fingerprint, is_active, trained_at, created_at)
		VALUES (:id, :name, :version, :intercept, :coefficients, :imputation, :fingerprint, :is_active, :trained_at, :created_at)
	`, row)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.ValidationError(fmt.Sprintf("model %s already exists", m.Label()))
		}
		return errors.DatabaseError("failed to insert model", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit model", err)
	}
	return nil
}

// List returns every stored version of a named model, newest first
func (r *ModelRepositoryImpl) List(ctx context.Context, name string) ([]ports.ModelSummary, error) {
	var summaries []ports.ModelSummary
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT name, version, fingerprint, is_active, created_at
		FROM classifier_models
		WHERE name = $1
		ORDER BY created_at DESC
	`, name)
	if err != nil {
		return nil, errors.DatabaseError("failed to list models", err)
	}
	return summaries, nil
}

func newModelRow(m *model.LogisticModel) (*modelRow, error) {
	coefficients, err := json.Marshal(m.Coefficients)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode coefficients")
	}
	imputation, err := json.Marshal(m.Imputation)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode imputation")
	}
	return &modelRow{
		ID:           core.ModelID(core.NewID()).String(),
		Name:         m.Name,
		Version:      m.Version,
		Intercept:    m.Intercept,
		Coefficients: coefficients,
		Imputation:   imputation,
		Fingerprint:  m.Fingerprint().String(),
		IsActive:     true,
		TrainedAt:    m.TrainedAt,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (row *modelRow) toModel() (*model.LogisticModel, error) {
	m := &model.LogisticModel{
		Name:      row.Name,
		Version:   row.Version,
		Intercept: row.Intercept,
		TrainedAt: row.TrainedAt,
	}
	if err := json.Unmarshal(row.Coefficients, &m.Coefficients); err != nil {
		return nil, fmt.Errorf("%w: coefficients: %v", core.ErrInvalidModel, err)
	}
	if err := json.Unmarshal(row.Imputation, &m.Imputation); err != nil {
		return nil, fmt.Errorf("%w: imputation: %v", core.ErrInvalidModel, err)
	}
	if got := m.Fingerprint().String(); got != row.Fingerprint {
		return nil, fmt.Errorf("%w: stored fingerprint %s does not match model %s", core.ErrInvalidModel, row.Fingerprint, got)
	}
	return m, nil
}
