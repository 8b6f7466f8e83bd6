package analysis

import (
	"math"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// riskCuts maps score floors to risk levels, highest first. Swapping the
// classification only means editing this table.
var riskCuts = []struct {
	Min   float64
	Level types.RiskLevel
}{
	{80, types.RiskCritical},
	{60, types.RiskHigh},
	{40, types.RiskMedium},
}

// AggregateScore combines evidence into a single 0-100 score: the weighted
// mean of evidence scores over the weights of the kinds actually present.
// Kinds that emitted nothing contribute to neither sum. An empty list scores
// zero.
func AggregateScore(cfg Config, evidence []types.Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}

	weighted := 0.0
	totalWeight := 0.0
	for _, ev := range evidence {
		w := cfg.weightFor(ev.Kind)
		weighted += ev.Score * w
		totalWeight += w
	}
	if totalWeight <= 0 {
		return 0
	}
	return math.Min(100, math.Max(0, weighted/totalWeight))
}

// RiskLevelFor maps a score to its risk level. The step function is
// monotonic and inclusive at each floor: 80 is already Crítico, 79.99 is
// Alto.
func RiskLevelFor(score float64) types.RiskLevel {
	for _, cut := range riskCuts {
		if score >= cut.Min {
			return cut.Level
		}
	}
	return types.RiskLow
}

// Confidence estimates how reliable an analysis is from the number of
// signals and their average strength. Zero evidence means zero confidence.
func Confidence(evidence []types.Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}

	base := math.Min(100, float64(len(evidence))*20)
	sum := 0.0
	for _, ev := range evidence {
		sum += ev.Score
	}
	avg := sum / float64(len(evidence))
	return math.Min(100, base*avg/100)
}
