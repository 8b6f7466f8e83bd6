package monitoring

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with domain-aware helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// SetDefault installs the logger as the process-wide slog default so that
// packages logging through the slog top-level functions share the handler.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Logger)
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// CollectionLogger logs the outcome of one collection source.
func (l *Logger) CollectionLogger(source string, records int, duration time.Duration, err error) {
	if err != nil {
		l.Warn("Collection Failed",
			"source", source,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return
	}
	l.Info("Collection Completed",
		"source", source,
		"records", records,
		"duration_ms", duration.Milliseconds(),
	)
}

// AnalysisLogger logs a completed procurement analysis.
func (l *Logger) AnalysisLogger(procurementID string, score float64, riskLevel string, evidenceCount int, duration time.Duration) {
	l.Info("Analysis Completed",
		"licitacao_id", procurementID,
		"score", score,
		"risk_level", riskLevel,
		"evidence_count", evidenceCount,
		"duration_ms", duration.Milliseconds(),
	)
}

// PersistenceLogger logs snapshot writes.
func (l *Logger) PersistenceLogger(file string, records int, err error) {
	if err != nil {
		l.Error("Snapshot Write Failed", "file", file, "error", err.Error())
		return
	}
	l.Info("Snapshot Written", "file", file, "records", records)
}

// ExternalAPILogger logs external API calls.
func (l *Logger) ExternalAPILogger(apiName, method, endpoint string, statusCode int, duration time.Duration, success bool) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}

	l.Log(context.Background(), level, "External API Call",
		"api_name", apiName,
		"method", method,
		"endpoint", endpoint,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// SystemLogger logs system-level events.
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

var startTime = time.Now()
