package middleware

import (
	"log/slog"
	"time"

	"github.com/krishisetu/krishisetu/pkg/logging"
)

// Logger logs each query and its outcome.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates the query logging middleware.
func NewLogger() *Logger {
	return &Logger{logger: logging.WithComponent("pipeline")}
}

func (m *Logger) Name() string { return "Logger" }

// Execute logs the query before and after processing.
func (m *Logger) Execute(ctx *Context, next Handler) error {
	attrs := []any{"mode", ctx.Mode}
	if ctx.Classification != nil {
		attrs = append(attrs, "language", ctx.Classification.Language, "query_type", ctx.Classification.QueryType)
	}
	m.logger.Info("processing query", attrs...)

	start := time.Now()
	err := next(ctx)
	elapsed := time.Since(start)

	if err != nil {
		m.logger.Error("query failed", "mode", ctx.Mode, "elapsed", elapsed, "error", err)
		return err
	}

	outcome := []any{"mode", ctx.Mode, "elapsed", elapsed}
	if ctx.Result != nil {
		outcome = append(outcome, "success", ctx.Result.Success, "source", ctx.Result.Source, "confidence", ctx.Result.Confidence)
	}
	m.logger.Info("query processed", outcome...)
	return nil
}
