package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/krishisetu/krishisetu/document"
	kerrors "github.com/krishisetu/krishisetu/errors"
	"github.com/krishisetu/krishisetu/pkg/logging"
	"github.com/krishisetu/krishisetu/pkg/telemetry"
)

// Client is the LLM text-completion collaborator.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Response wraps an analysis with the per-document verdicts that fed it.
type Response struct {
	Success   bool                  `json:"success"`
	Analysis  *AgriculturalAnalysis `json:"analysis"`
	Verdicts  []document.Verdict    `json:"document_verdicts"`
	LLMBacked bool                  `json:"llm_backed"`
	Error     string                `json:"error,omitempty"`
}

const systemPrompt = `You are an agricultural analyst. Analyze the farmer's query and the document excerpts, then respond with a single JSON object matching this schema exactly:
{
  "soil": {"type": str, "ph": {"average": float, "range": str}, "moisture_percentage": {"average": float, "range": str}, "organic_carbon_percentage": {"average": float, "range": str}, "nutrients": {"nitrogen_kg_per_ha": {...}, "phosphorus_kg_per_ha": {...}, "potassium_kg_per_ha": {...}}},
  "crop": {"types": [str], "season": str, "growth_stages": [str]},
  "weather": {"temperature_c": {...}, "humidity_pct": {...}, "rainfall_mm": {"last_24h": {...}, "forecast_24h": {...}}, "wind_speed_mps": {...}},
  "finance": {"market_price_inr_per_quintal": {...}, "market_trend": str, "applicable_schemes": [str]},
  "risks": {"pest_risk": {"average": str, "notable_risks": [str]}, "irrigation_need": {"average": str, "specific_needs": [str]}},
  "recommendations": {"irrigation": {"general": str, "specific": [{"crop": str, "action": str}]}, "crop_management": {"general": str, "specific": [{"crop": str, "action": str}]}},
  "summary": str
}
Respond with JSON only, no prose.`

// Service runs document-grounded LLM analysis.
type Service struct {
	client   Client
	excerpts *document.ExcerptBuilder
	logger   *slog.Logger
}

// NewService creates the analysis service. A nil client disables LLM
// analysis; document classification still runs.
func NewService(client Client) (*Service, error) {
	excerpts, err := document.NewExcerptBuilder(0)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return &Service{
		client:   client,
		excerpts: excerpts,
		logger:   logging.WithComponent("analysis"),
	}, nil
}

// Analyze extracts and classifies the uploaded files, then asks the LLM
// for a schema-conforming analysis of the relevant ones. When every file
// is irrelevant it returns a structured unsuccessful response rather than
// an error; a schema violation from the LLM is returned as an error.
func (s *Service) Analyze(ctx context.Context, query string, files map[string][]byte) (*Response, error) {
	ctx, span := telemetry.Tracer("analysis").Start(ctx, "analysis.Analyze")
	var retErr error
	defer func() { telemetry.End(span, retErr) }()

	extractions := document.ExtractBatch(files)
	verdicts := document.ClassifyBatch(extractions)

	if len(extractions) > 0 && document.AllIrrelevant(verdicts) {
		s.logger.Info("all documents irrelevant", "count", len(extractions))
		return &Response{
			Success:  false,
			Verdicts: verdicts,
			Error:    kerrors.ErrIrrelevantInput.Error(),
			Analysis: &AgriculturalAnalysis{
				Summary: "None of the uploaded documents contain agricultural content, so no analysis was produced.",
			},
		}, nil
	}

	if s.client == nil {
		return &Response{
			Success:  true,
			Verdicts: verdicts,
			Analysis: &AgriculturalAnalysis{
				Summary: "Document classification completed. Configure an LLM provider for full analysis.",
			},
		}, nil
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Farmer query: %s\n", query)
	if excerpt := s.excerpts.Build(extractions, verdicts); excerpt != "" {
		fmt.Fprintf(&user, "\nDocument excerpts:\n%s", excerpt)
	}

	raw, err := s.client.Complete(ctx, systemPrompt, user.String())
	if err != nil {
		retErr = fmt.Errorf("analysis: llm completion: %w", err)
		return nil, retErr
	}

	parsed, err := DecodeAnalysis(raw)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	return &Response{
		Success:   true,
		Analysis:  parsed,
		Verdicts:  verdicts,
		LLMBacked: true,
	}, nil
}
