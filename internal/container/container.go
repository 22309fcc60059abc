package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"skinrisk/adapters/classifier/logistic"
	"skinrisk/adapters/datareadiness/cleaner"
	"skinrisk/adapters/postgres"
	"skinrisk/app"
	"skinrisk/domain/survey"
	"skinrisk/internal"
	"skinrisk/internal/config"
	"skinrisk/internal/errors"
	"skinrisk/internal/metrics"
	"skinrisk/internal/migration"
	"skinrisk/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	Schema     *survey.Schema
	Cleaner    *cleaner.DomainCleaner
	Classifier ports.Classifier
	ModelRepo  ports.ModelRepository
	Metrics    *metrics.Metrics
	Service    *app.AssessmentService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	schema := survey.DefaultSchema()
	return &Container{
		Config:  cfg,
		Logger:  internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
		Schema:  schema,
		Cleaner: cleaner.NewDomainCleaner(schema),
		Metrics: metrics.New(),
	}, nil
}

// InitWithDatabase connects to Postgres, runs migrations and wires the model registry
func (c *Container) InitWithDatabase(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return errors.DatabaseError("failed to connect to database", err)
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return errors.Wrap(err, "database migration failed")
	}

	c.DB = db
	c.ModelRepo = postgres.NewModelRepository(db)
	return nil
}

// LoadClassifier loads the model from the configured source
func (c *Container) LoadClassifier(ctx context.Context) error {
	log := c.Logger.With("Container")

	var clf *logistic.Classifier
	switch c.Config.Model.Source {
	case config.ModelSourcePostgres:
		if c.ModelRepo == nil {
			if err := c.InitWithDatabase(ctx); err != nil {
				return err
			}
		}
		m, err := c.ModelRepo.GetActive(ctx, c.Config.Model.Name)
		if err != nil {
			return errors.Wrap(err, "failed to load model from registry")
		}
		if clf, err = logistic.New(m, c.Schema); err != nil {
			return errors.Wrap(err, "registry model does not fit the survey schema")
		}
	default:
		var err error
		if clf, err = logistic.LoadFile(c.Config.Model.Path, c.Schema); err != nil {
			return errors.Wrap(err, "failed to load model file")
		}
	}

	c.Classifier = clf
	log.Info("loaded classifier %s (%s) from %s", clf.Name(), clf.Fingerprint().Short(), c.Config.Model.Source)
	return nil
}

// BuildService wires the assessment service around whatever classifier is loaded
func (c *Container) BuildService() *app.AssessmentService {
	c.Service = app.NewAssessmentService(c.Cleaner, c.Classifier,
		app.WithMetrics(c.Metrics),
		app.WithLogger(c.Logger),
		app.WithConcurrency(c.Config.Batch.Concurrency),
	)
	return c.Service
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- c.DB.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(10 * time.Second):
		return fmt.Errorf("timed out closing database")
	}
}
