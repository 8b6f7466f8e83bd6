package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// Source produces procurement records from one origin (a public portal, an
// API, a fixture set). Sources are expected to apply their own timeout and
// backoff policy.
type Source interface {
	Name() string
	Collect(ctx context.Context, lookbackDays int) ([]types.Procurement, error)
}

// Collector fans in records from multiple sources. A failing source degrades
// the batch instead of aborting it; the run only fails when every source
// fails.
type Collector struct {
	sources []Source
	log     *monitoring.Logger
}

// New creates a collector over the given sources.
func New(log *monitoring.Logger, sources ...Source) *Collector {
	return &Collector{sources: sources, log: log}
}

// Collect gathers records published in the last lookbackDays days from all
// sources, in source order.
func (c *Collector) Collect(ctx context.Context, lookbackDays int) ([]types.Procurement, error) {
	var records []types.Procurement
	failures := 0

	for _, source := range c.sources {
		start := time.Now()
		collected, err := source.Collect(ctx, lookbackDays)
		c.log.CollectionLogger(source.Name(), len(collected), time.Since(start), err)
		if err != nil {
			failures++
			continue
		}
		records = append(records, collected...)
	}

	if failures == len(c.sources) {
		return nil, fmt.Errorf("all %d collection sources failed", len(c.sources))
	}
	return records, nil
}
