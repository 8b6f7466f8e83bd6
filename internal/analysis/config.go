package analysis

import (
	"fmt"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// Config carries every tunable threshold and weight of the scoring pipeline.
// It is validated once at startup and never mutated afterwards.
type Config struct {
	// ExcessivePricePct is the percentage above the market reference beyond
	// which the winning bid is flagged.
	ExcessivePricePct float64

	// TailoredSpecScore is the accumulated keyword score above which a
	// specification is flagged as tailor-made.
	TailoredSpecScore float64

	// CartelWinRate is the historical win-rate fraction, in (0,1], above
	// which the winning company is flagged.
	CartelWinRate float64

	// MinBidders flags procurements with fewer eligible bidders than this.
	MinBidders int

	// DeadlineDays flags procurements closing in fewer whole days than this.
	DeadlineDays int

	// Weights maps each evidence kind to its share of the aggregate score.
	// Kinds absent from the table fall back to DefaultWeight.
	Weights       map[types.EvidenceKind]float64
	DefaultWeight float64
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		ExcessivePricePct: 50,
		TailoredSpecScore: 40,
		CartelWinRate:     0.8,
		MinBidders:        2,
		DeadlineDays:      3,
		Weights: map[types.EvidenceKind]float64{
			types.EvidenceExcessivePrice: 0.4,
			types.EvidenceTailoredSpec:   0.3,
			types.EvidenceCartelHistory:  0.2,
			types.EvidenceLowCompetition: 0.1,
		},
		DefaultWeight: 0.1,
	}
}

// Validate checks that the thresholds form a usable partition.
func (c Config) Validate() error {
	if c.ExcessivePricePct <= 0 {
		return fmt.Errorf("excessive price threshold must be positive, got %v", c.ExcessivePricePct)
	}
	if c.TailoredSpecScore < 0 {
		return fmt.Errorf("tailored spec threshold must be non-negative, got %v", c.TailoredSpecScore)
	}
	if c.CartelWinRate <= 0 || c.CartelWinRate > 1 {
		return fmt.Errorf("cartel win-rate threshold must be in (0,1], got %v", c.CartelWinRate)
	}
	if c.MinBidders < 0 {
		return fmt.Errorf("minimum bidders must be non-negative, got %d", c.MinBidders)
	}
	if c.DeadlineDays < 0 {
		return fmt.Errorf("deadline days must be non-negative, got %d", c.DeadlineDays)
	}
	if c.DefaultWeight <= 0 {
		return fmt.Errorf("default weight must be positive, got %v", c.DefaultWeight)
	}
	for kind, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("weight for %s must be non-negative, got %v", kind, w)
		}
	}
	return nil
}

// weightFor returns the configured weight for a kind, or the fallback.
func (c Config) weightFor(kind types.EvidenceKind) float64 {
	if w, ok := c.Weights[kind]; ok {
		return w
	}
	return c.DefaultWeight
}
