package app

import (
	"context"

	"skinrisk/domain/risk"
	"skinrisk/domain/survey"
	"skinrisk/internal/errors"
	"skinrisk/internal/profiling"
	"skinrisk/ports"
)

// Profile cleans a dataset and profiles the cleaned values. When a
// classifier is loaded, rows are also scored and counted per tier.
func (s *AssessmentService) Profile(ctx context.Context, reader ports.DatasetReader) (*profiling.DatasetProfile, error) {
	ds, err := reader.ReadDataset(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dataset")
	}

	cleaned := make([]survey.CleanedRecord, len(ds.Records))
	for i, raw := range ds.Records {
		cleaned[i] = s.cleaner.Transform(raw)
	}
	profile := profiling.NewDataProfiler(s.Schema(), s.logger).ProfileDataset(cleaned)

	if s.classifier == nil {
		return profile, nil
	}
	rows, err := s.AssessBatch(ctx, ds.Records)
	if err != nil {
		return nil, err
	}
	assessments := make([]risk.Assessment, 0, len(rows))
	for _, r := range rows {
		if r.Assessment != nil {
			assessments = append(assessments, *r.Assessment)
		}
	}
	profile.AddTiers(assessments)
	return profile, nil
}
