package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hiperfaturometro/hiperfaturometro/internal/analysis"
	"github.com/hiperfaturometro/hiperfaturometro/internal/collector"
	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/store"
	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// Report summarizes one batch run.
type Report struct {
	RunID        string    `json:"run_id"`
	ExecutedAt   time.Time `json:"data_execucao"`
	LookbackDays int       `json:"dias_retroativos"`
	Collected    int       `json:"licitacoes_coletadas"`
	Analyzed     int       `json:"licitacoes_analisadas"`
	Suspicious   int       `json:"casos_suspeitos"`
	Errors       []string  `json:"erros"`
}

// Tracker orchestrates the batch pipeline: collect-all, analyze-all,
// materialize-all, persist each stage's snapshot. Strictly sequential; no
// per-record parallelism.
type Tracker struct {
	collector    *collector.Collector
	analyzer     *analysis.Analyzer
	materializer *Materializer
	store        *store.Store
	log          *monitoring.Logger
}

// NewTracker wires the pipeline stages.
func NewTracker(c *collector.Collector, a *analysis.Analyzer, m *Materializer, s *store.Store, log *monitoring.Logger) *Tracker {
	return &Tracker{
		collector:    c,
		analyzer:     a,
		materializer: m,
		store:        s,
		log:          log,
	}
}

// RunCycle executes one full batch run over procurements published in the
// last lookbackDays days. Only a total collection failure aborts the run; a
// failing record analysis or snapshot write degrades the run and lands in the
// report's error list.
func (t *Tracker) RunCycle(ctx context.Context, lookbackDays int) (Report, error) {
	report := Report{
		RunID:        uuid.NewString(),
		ExecutedAt:   time.Now(),
		LookbackDays: lookbackDays,
		Errors:       []string{},
	}

	t.log.SystemLogger("cycle_started", fmt.Sprintf("lookback %d days", lookbackDays))

	records, err := t.collector.Collect(ctx, lookbackDays)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("coleta de licitações falhou: %v", err))
		return report, fmt.Errorf("collection failed: %w", err)
	}
	report.Collected = len(records)

	if err := t.store.SaveProcurements(records); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("persistência de licitações falhou: %v", err))
		t.log.PersistenceLogger("licitacoes.json", len(records), err)
	} else {
		t.log.PersistenceLogger("licitacoes.json", len(records), nil)
	}

	analyses := t.analyzeAll(ctx, records, &report)
	report.Analyzed = len(analyses)

	if err := t.store.SaveAnalyses(analyses); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("persistência de análises falhou: %v", err))
		t.log.PersistenceLogger("analises.json", len(analyses), err)
	} else {
		t.log.PersistenceLogger("analises.json", len(analyses), nil)
	}

	cases := t.materializer.Materialize(records, analyses)
	for _, c := range cases {
		if c.RiskLevel.AtLeast(types.RiskHigh) {
			report.Suspicious++
		}
	}

	if err := t.store.SaveCases(cases); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("persistência de casos falhou: %v", err))
		t.log.PersistenceLogger("casos_processados.json", len(cases), err)
	} else {
		t.log.PersistenceLogger("casos_processados.json", len(cases), nil)
	}

	t.log.SystemLogger("cycle_finished",
		fmt.Sprintf("collected=%d analyzed=%d cases=%d suspicious=%d errors=%d",
			report.Collected, report.Analyzed, len(cases), report.Suspicious, len(report.Errors)))

	return report, nil
}

// analyzeAll analyzes every record, isolating per-record failures so one bad
// record never aborts the batch.
func (t *Tracker) analyzeAll(ctx context.Context, records []types.Procurement, report *Report) []types.Analysis {
	analyses := make([]types.Analysis, 0, len(records))

	for _, rec := range records {
		start := time.Now()
		a, err := t.analyzeOne(ctx, rec)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("análise da licitação %s falhou: %v", rec.ID, err))
			continue
		}
		analyses = append(analyses, a)
		t.log.AnalysisLogger(rec.ID, a.Score, string(a.RiskLevel), len(a.Evidence), time.Since(start))
	}

	return analyses
}

// analyzeOne converts a detector panic into a recorded error.
func (t *Tracker) analyzeOne(ctx context.Context, rec types.Procurement) (a types.Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.analyzer.Analyze(ctx, rec), nil
}
