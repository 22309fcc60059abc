package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes the observed values of one field
type Summary struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Outliers int     `json:"outliers"`
}

// DistributionAnalyzer computes value summaries
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Summarize computes summary statistics. data must not be empty.
func (da *DistributionAnalyzer) Summarize(data []float64) (Summary, error) {
	var s Summary
	var err error

	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if len(data) > 1 {
		if s.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return s, err
		}
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.Q25, err = stats.Percentile(data, 25); err != nil {
		return s, err
	}
	if s.Q75, err = stats.Percentile(data, 75); err != nil {
		return s, err
	}

	s.Skewness = calculateSkewness(data, s.Mean, s.StdDev)
	s.Outliers = detectOutliers(data, s.Q25, s.Q75)
	return s, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	return sumCubedDeviations * n / ((n - 1) * (n - 2))
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}

// WilsonInterval is the Wilson score interval for successes out of n at the
// given confidence level. It returns [0,1] when n is zero.
func WilsonInterval(successes, n int, confidence float64) (lo, hi float64) {
	if n <= 0 {
		return 0, 1
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	nf := float64(n)
	p := float64(successes) / nf
	z2 := z * z

	center := (p + z2/(2*nf)) / (1 + z2/nf)
	half := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / (1 + z2/nf)
	return math.Max(0, center-half), math.Min(1, center+half)
}
