package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with domain-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout.
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
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
	return &Logger{Logger: slog.New(handler)}
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

// PredictionLogger logs a served prediction.
func (l *Logger) PredictionLogger(target, region string, turnout, agreement float64, willPass, cacheHit bool, duration time.Duration) {
	l.Info("Prediction Served",
		"target", target,
		"region", region,
		"predicted_turnout", turnout,
		"predicted_agreement", agreement,
		"will_pass", willPass,
		"cache_hit", cacheHit,
		"duration_ms", duration.Milliseconds(),
	)
}

// TablesLogger logs reference-table loading at startup.
func (l *Logger) TablesLogger(path, version string, fromFile bool) {
	l.Info("Reference Tables Loaded",
		"path", path,
		"version", version,
		"from_file", fromFile,
	)
}
