package analysis

import (
	"context"
	"time"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// PriceReference provides an estimated fair market price for a product
// description. Implementations return ok=false when the product is unknown.
type PriceReference interface {
	ReferencePrice(description string) (price float64, ok bool)
}

// WinRateSource reports the historical share of procurements a company has
// won with a given issuing body, as a fraction in [0,1].
type WinRateSource interface {
	WinRate(ctx context.Context, cnpj, agency string) (float64, error)
}

// Analyzer runs the full scoring pipeline for one procurement record:
// evidence extraction, weighted aggregation, risk classification,
// recommendations and confidence. Every detector is a pure function of the
// record plus read-only configuration; collaborator failures degrade to
// "signal unknown" and never propagate.
type Analyzer struct {
	cfg     Config
	prices  PriceReference
	history WinRateSource
	now     func() time.Time
}

// NewAnalyzer validates the configuration and wires the collaborators.
func NewAnalyzer(cfg Config, prices PriceReference, history WinRateSource) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		cfg:     cfg,
		prices:  prices,
		history: history,
		now:     time.Now,
	}, nil
}

// Analyze produces the risk assessment of a single record. Detector order is
// fixed so evidence and recommendation order are deterministic.
func (a *Analyzer) Analyze(ctx context.Context, rec types.Procurement) types.Analysis {
	detectors := []func(context.Context, types.Procurement) *types.Evidence{
		a.detectExcessivePrice,
		a.detectTailoredSpec,
		a.detectCartelHistory,
		a.detectLowCompetition,
		a.detectSuspiciousDeadline,
	}

	evidence := make([]types.Evidence, 0, len(detectors))
	for _, detect := range detectors {
		if ev := detect(ctx, rec); ev != nil {
			evidence = append(evidence, *ev)
		}
	}

	score := AggregateScore(a.cfg, evidence)
	return types.Analysis{
		ProcurementID:   rec.ID,
		AnalyzedAt:      a.now(),
		Score:           score,
		RiskLevel:       RiskLevelFor(score),
		Evidence:        evidence,
		Recommendations: Recommendations(evidence, score),
		Confidence:      Confidence(evidence),
		Analyst:         "Sistema IA",
	}
}
