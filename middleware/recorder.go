package middleware

import (
	"log/slog"

	"github.com/krishisetu/krishisetu/pkg/logging"
	"github.com/krishisetu/krishisetu/querylog"
)

// Recorder appends each processed query to the query log. Store failures
// are logged and swallowed; persistence never blocks a response.
type Recorder struct {
	store  querylog.Store
	logger *slog.Logger
}

// NewRecorder creates the query recording middleware.
func NewRecorder(store querylog.Store) *Recorder {
	return &Recorder{
		store:  store,
		logger: logging.WithComponent("pipeline.recorder"),
	}
}

func (m *Recorder) Name() string { return "Recorder" }

// Execute records the query after the rest of the chain completes.
func (m *Recorder) Execute(ctx *Context, next Handler) error {
	err := next(ctx)
	if m.store == nil {
		return err
	}

	rec := &querylog.Record{
		Query:   ctx.Query,
		Mode:    ctx.Mode,
		Success: err == nil,
	}
	if ctx.Classification != nil {
		rec.Language = ctx.Classification.Language
		rec.QueryType = string(ctx.Classification.QueryType)
		rec.Location = ctx.Classification.Location
		rec.Crop = ctx.Classification.Crop
	}
	if ctx.Result != nil {
		rec.Source = ctx.Result.Source
		rec.Confidence = ctx.Result.Confidence
		rec.Success = rec.Success && ctx.Result.Success
	}

	if appendErr := m.store.Append(ctx.Context(), rec); appendErr != nil {
		m.logger.Warn("failed to record query", "error", appendErr)
	}
	return err
}
