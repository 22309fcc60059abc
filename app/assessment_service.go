package app

import (
	"context"
	stderrors "errors"
	"time"

	"golang.org/x/sync/errgroup"

	"skinrisk/adapters/datareadiness/cleaner"
	"skinrisk/domain/risk"
	"skinrisk/domain/survey"
	"skinrisk/internal"
	"skinrisk/internal/assembly"
	"skinrisk/internal/errors"
	"skinrisk/internal/metrics"
	"skinrisk/ports"
)

// DefaultBatchConcurrency bounds batch scoring when no limit is configured
const DefaultBatchConcurrency = 8

// AssessmentService runs assemble → clean → classify → score
type AssessmentService struct {
	cleaner     *cleaner.DomainCleaner
	classifier  ports.Classifier
	metrics     *metrics.Metrics
	logger      *internal.Logger
	concurrency int
}

// Option configures an AssessmentService
type Option func(*AssessmentService)

// WithMetrics records pipeline metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AssessmentService) { s.metrics = m }
}

// WithLogger sets the service logger
func WithLogger(l *internal.Logger) Option {
	return func(s *AssessmentService) { s.logger = l }
}

// WithConcurrency bounds concurrent rows in AssessBatch
func WithConcurrency(n int) Option {
	return func(s *AssessmentService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewAssessmentService creates the service. The classifier may be nil for
// clean-only use; scoring then fails with UNAVAILABLE.
func NewAssessmentService(c *cleaner.DomainCleaner, classifier ports.Classifier, opts ...Option) *AssessmentService {
	if c == nil {
		c = cleaner.NewDomainCleaner(nil)
	}
	s := &AssessmentService{
		cleaner:     c,
		classifier:  classifier,
		logger:      internal.DefaultLogger,
		concurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("AssessmentService")
	return s
}

// Schema is the schema the service cleans against
func (s *AssessmentService) Schema() *survey.Schema {
	return s.cleaner.Schema()
}

// ModelName names the loaded classifier, or "" when none is loaded
func (s *AssessmentService) ModelName() string {
	if s.classifier == nil {
		return ""
	}
	return s.classifier.Name()
}

// Ready reports whether the service can score
func (s *AssessmentService) Ready(context.Context) error {
	if s.classifier == nil {
		return errors.Unavailable("no classifier loaded")
	}
	return nil
}

// CleanResult is a cleaned record with a per-field account of the cleaning
type CleanResult struct {
	Cleaned survey.CleanedRecord `json:"cleaned"`
	Changes []cleaner.Change     `json:"changes"`
}

// Clean cleans a raw record without scoring it
func (s *AssessmentService) Clean(raw survey.RawRecord) CleanResult {
	cleaned, changes := s.cleaner.TransformWithReport(raw)
	return CleanResult{Cleaned: cleaned, Changes: changes}
}

// Assess scores questionnaire answers
func (s *AssessmentService) Assess(ctx context.Context, answers assembly.FormAnswers) (*risk.Assessment, error) {
	return s.score(ctx, answers.ToRawRecord())
}

// AssessRecord scores a raw survey record. With strict set, values outside
// their field's raw domain are rejected before cleaning.
func (s *AssessmentService) AssessRecord(ctx context.Context, raw survey.RawRecord, strict bool) (*risk.Assessment, error) {
	if strict {
		if err := s.Schema().Validate(raw); err != nil {
			s.metrics.ObserveFailure(errors.CodeInvalidInput)
			return nil, errors.InvalidInput("record has values outside their survey domain", err)
		}
	}
	return s.score(ctx, raw)
}

func (s *AssessmentService) score(ctx context.Context, raw survey.RawRecord) (*risk.Assessment, error) {
	if s.classifier == nil {
		return nil, errors.Unavailable("no classifier loaded")
	}

	cleaned := s.cleaner.Transform(raw)
	features := cleaned.Vector(s.Schema())
	s.metrics.ObserveCleaned(features)
	s.logger.Trace("cleaned record: %d of %d features missing", features.MissingCount(), len(features.Values))

	start := time.Now()
	p, err := s.classifier.PredictProba(ctx, features)
	s.metrics.ObserveClassifier(time.Since(start))
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.Error("classifier %s failed: %v", s.classifier.Name(), err)
		s.metrics.ObserveFailure(errors.CodeExternalService)
		return nil, errors.ExternalServiceError("classifier", err)
	}

	a, err := risk.NewAssessment(p)
	if err != nil {
		s.logger.Error("classifier %s returned %v", s.classifier.Name(), err)
		s.metrics.ObserveFailure(errors.CodeProbabilityRange)
		return nil, errors.ProbabilityOutOfRange(s.classifier.Name(), err)
	}
	a.Model = s.classifier.Name()
	a.MissingFeatures = features.MissingCount()

	s.metrics.ObserveAssessment(a.Tier)
	s.logger.Debug("assessment %s: p=%.4f score=%d tier=%s", a.ID, a.Probability, a.Score, a.Tier)
	return &a, nil
}

// AssessBatch scores records concurrently and returns one row per record in
// input order. A row that cannot be scored carries its error; only
// cancellation aborts the batch.
func (s *AssessmentService) AssessBatch(ctx context.Context, records []survey.RawRecord) ([]ports.AssessmentRow, error) {
	rows := make([]ports.AssessmentRow, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, raw := range records {
		g.Go(func() error {
			rows[i].Row = i + 1
			a, err := s.score(gctx, raw)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				rows[i].Err = err.Error()
				return nil
			}
			rows[i].Assessment = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.metrics.ObserveBatch(len(records))
	return rows, nil
}

// BatchSummary describes a completed batch run
type BatchSummary struct {
	Source        string         `json:"source"`
	Rows          int            `json:"rows"`
	Scored        int            `json:"scored"`
	Failed        int            `json:"failed"`
	UnparsedCells int            `json:"unparsed_cells"`
	Tiers         map[string]int `json:"tiers"`
	Duration      time.Duration  `json:"duration"`
}

// RunBatch reads a dataset, scores every row and writes the report
func (s *AssessmentService) RunBatch(ctx context.Context, reader ports.DatasetReader, writer ports.ReportWriter) (*BatchSummary, error) {
	start := time.Now()

	ds, err := reader.ReadDataset(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dataset")
	}

	rows, err := s.AssessBatch(ctx, ds.Records)
	if err != nil {
		return nil, err
	}

	if writer != nil {
		if err := writer.WriteReport(ctx, rows); err != nil {
			return nil, errors.Wrap(err, "failed to write report")
		}
	}

	summary := &BatchSummary{
		Source:        ds.Source,
		Rows:          len(rows),
		UnparsedCells: ds.UnparsedCells,
		Tiers:         make(map[string]int, 3),
	}
	for _, t := range risk.Tiers() {
		summary.Tiers[t.String()] = 0
	}
	for _, r := range rows {
		if r.Assessment == nil {
			summary.Failed++
			continue
		}
		summary.Scored++
		summary.Tiers[r.Assessment.Tier.String()]++
	}
	summary.Duration = time.Since(start)

	s.logger.Info("batch %s: %d rows, %d scored, %d failed in %s",
		ds.Source, summary.Rows, summary.Scored, summary.Failed, summary.Duration.Round(time.Millisecond))
	return summary, nil
}
