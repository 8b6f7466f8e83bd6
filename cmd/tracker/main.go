package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hiperfaturometro/hiperfaturometro/internal/analysis"
	"github.com/hiperfaturometro/hiperfaturometro/internal/api"
	"github.com/hiperfaturometro/hiperfaturometro/internal/collector"
	"github.com/hiperfaturometro/hiperfaturometro/internal/market"
	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/store"
	"github.com/hiperfaturometro/hiperfaturometro/internal/tracker"
)

func main() {
	days := flag.Int("days", 7, "lookback window in days for procurement collection")
	dataDir := flag.String("data", getEnvOrDefault("DATA_DIR", "./data"), "directory holding the snapshot files")
	enablePNCP := flag.Bool("pncp", false, "also collect from the live PNCP consultation API")
	flag.Parse()

	appLogger := monitoring.NewLogger()
	appLogger.SetDefault()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshots, err := store.NewStore(*dataDir)
	if err != nil {
		slog.Error("Failed to initialize snapshot store", "error", err, "data_dir", *dataDir)
		os.Exit(1)
	}

	synthetic := collector.NewSynthetic()
	sources := []collector.Source{synthetic}
	if *enablePNCP {
		sources = append(sources, collector.NewPNCPClient(os.Getenv("PNCP_BASE_URL"), appLogger))
	}

	prices := market.NewPriceTable()
	history := market.NewSimulatedWinRates(synthetic.SuspiciousCNPJs()...)

	analyzer, err := analysis.NewAnalyzer(analysis.DefaultConfig(), prices, history)
	if err != nil {
		slog.Error("Invalid analyzer configuration", "error", err)
		os.Exit(1)
	}

	runner := tracker.NewTracker(
		collector.New(appLogger, sources...),
		analyzer,
		tracker.NewMaterializer(prices),
		snapshots,
		appLogger,
	)

	report, err := runner.RunCycle(ctx, *days)
	if err != nil {
		slog.Error("Batch run failed", "error", err, "run_id", report.RunID)
		os.Exit(1)
	}

	slog.Info("Batch run finished",
		"run_id", report.RunID,
		"licitacoes_coletadas", report.Collected,
		"licitacoes_analisadas", report.Analyzed,
		"casos_suspeitos", report.Suspicious,
		"erros", len(report.Errors),
	)
	for _, msg := range report.Errors {
		slog.Warn("Run error", "error", msg)
	}

	stats, err := api.NewDataService(snapshots).Statistics()
	if err != nil {
		slog.Warn("Could not read statistics after run", "error", err)
		return
	}
	slog.Info("Current statistics",
		"total_licitacoes_analisadas", stats.TotalAnalyzed,
		"casos_suspeitos", stats.SuspiciousCases,
		"valor_superfaturado_total", stats.TotalOvercharged,
		"taxa_suspeicao", stats.SuspicionRate,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
