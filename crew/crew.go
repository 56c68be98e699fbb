package crew

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/external"
	"github.com/krishisetu/krishisetu/pkg/logging"
	"github.com/krishisetu/krishisetu/pkg/telemetry"
)

// Summarizer produces a free-text synthesis of the advisor results. It is
// optional; without one the crew reports direct processing.
type Summarizer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Recommendations groups synthesized advice into fixed categories. All
// five lists are always present, possibly empty.
type Recommendations struct {
	ImmediateActions []string `json:"immediate_actions"`
	ShortTermPlan    []string `json:"short_term_plan"`
	LongTermStrategy []string `json:"long_term_strategy"`
	RiskMitigation   []string `json:"risk_mitigation"`
	Opportunities    []string `json:"opportunities"`
}

func emptyRecommendations() Recommendations {
	return Recommendations{
		ImmediateActions: []string{},
		ShortTermPlan:    []string{},
		LongTermStrategy: []string{},
		RiskMitigation:   []string{},
		Opportunities:    []string{},
	}
}

// ComprehensiveResponse is the combined output of a comprehensive query.
type ComprehensiveResponse struct {
	CrewResult        string                    `json:"crew_result"`
	ExternalData      external.Data             `json:"external_data"`
	AgentInsights     map[string]advisor.Result `json:"agent_insights"`
	Recommendations   Recommendations           `json:"recommendations"`
	OverallConfidence float64                   `json:"overall_confidence"`
	Source            string                    `json:"source"`
	Timestamp         string                    `json:"timestamp"`
}

// Option configures the crew.
type Option func(*Crew)

// WithSummarizer attaches an LLM synthesis step to comprehensive queries.
func WithSummarizer(s Summarizer) Option {
	return func(c *Crew) {
		c.llm = s
	}
}

// Crew orchestrates the weather, crop and finance advisors over a shared
// external data provider.
type Crew struct {
	advisors []advisor.Advisor
	provider external.Provider
	llm      Summarizer
	logger   *slog.Logger
}

// New creates a crew. The advisor order fixes tie-breaking for simple
// queries: weather, then crop, then finance.
func New(weather, crop, finance advisor.Advisor, provider external.Provider, opts ...Option) *Crew {
	c := &Crew{
		advisors: []advisor.Advisor{weather, crop, finance},
		provider: provider,
		logger:   logging.WithComponent("crew"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessSimple routes the query to the single most relevant advisor.
// Ties break in declaration order.
func (c *Crew) ProcessSimple(ctx context.Context, query string, qc *advisor.QueryContext) advisor.Result {
	best := c.advisors[0]
	bestScore := relevanceScore(query, best.Keywords())
	for _, a := range c.advisors[1:] {
		if score := relevanceScore(query, a.Keywords()); score > bestScore {
			best, bestScore = a, score
		}
	}

	c.logger.Debug("routing simple query", "advisor", best.Name(), "score", bestScore)
	return best.ProcessQuery(ctx, query, qc)
}

// ProcessComprehensive fans out all three advisors and the external
// comprehensive fetch concurrently, then synthesizes the results. It
// returns an error only when the context is cancelled before the fan-out
// completes.
func (c *Crew) ProcessComprehensive(ctx context.Context, query string, qc *advisor.QueryContext) (*ComprehensiveResponse, error) {
	ctx, span := telemetry.Tracer("crew").Start(ctx, "crew.ProcessComprehensive")
	var retErr error
	defer func() { telemetry.End(span, retErr) }()

	if qc == nil {
		qc = &advisor.QueryContext{}
	}

	insights := make(map[string]advisor.Result, len(c.advisors))
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		data external.Data
	)

	keys := []string{"weather", "crop", "finance"}
	for i, a := range c.advisors {
		wg.Add(1)
		go func(key string, a advisor.Advisor) {
			defer wg.Done()
			res := a.ProcessQuery(ctx, query, qc)
			mu.Lock()
			insights[key] = res
			mu.Unlock()
		}(keys[i], a)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if c.provider == nil {
			return
		}
		data = c.provider.Comprehensive(ctx, qc.Location, qc.CropType, qc.State)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		retErr = ctx.Err()
		return nil, retErr
	}

	confidences := make([]float64, 0, len(insights))
	for _, key := range keys {
		if res, ok := insights[key]; ok {
			confidences = append(confidences, res.Confidence)
		}
	}

	resp := &ComprehensiveResponse{
		CrewResult:        c.crewResult(ctx, query, insights),
		ExternalData:      data,
		AgentInsights:     insights,
		Recommendations:   SynthesizeRecommendations(data),
		OverallConfidence: AggregateConfidence(confidences, data),
		Source:            c.source(),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
	return resp, nil
}

func (c *Crew) source() string {
	if c.llm == nil {
		return "Agricultural Crew (Direct Processing)"
	}
	return "Agricultural Crew"
}

// crewResult asks the summarizer for a narrative when one is configured.
// Summarizer failures degrade to direct processing, never fail the query.
func (c *Crew) crewResult(ctx context.Context, query string, insights map[string]advisor.Result) string {
	if c.llm == nil {
		return "Direct agent processing (no LLM available)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Farmer query: %s\n\nAdvisor findings:\n", query)
	for _, key := range []string{"weather", "crop", "finance"} {
		res, ok := insights[key]
		if !ok {
			continue
		}
		if res.Success {
			fmt.Fprintf(&b, "- %s responded with confidence %.2f\n", res.Source, res.Confidence)
		} else {
			fmt.Fprintf(&b, "- %s failed: %s\n", res.Source, res.Err)
		}
	}

	const system = "You are an agricultural advisory coordinator. Summarize the advisor findings into practical guidance for an Indian farmer in 3-5 sentences."
	summary, err := c.llm.Complete(ctx, system, b.String())
	if err != nil {
		c.logger.Warn("summarizer failed, using direct processing", "error", err)
		return "Direct agent processing (no LLM available)"
	}
	return summary
}

// SynthesizeRecommendations maps external data onto the fixed advice
// categories. Errored sources contribute nothing.
func SynthesizeRecommendations(data external.Data) Recommendations {
	recs := emptyRecommendations()

	if weather, ok := cleanMap(data["weather"]); ok {
		if getFloat(weather, "temperature", 25) > 30 {
			recs.ImmediateActions = append(recs.ImmediateActions, "Increase irrigation frequency due to high temperature")
		}
		if getFloat(weather, "humidity", 60) < 50 {
			recs.ImmediateActions = append(recs.ImmediateActions, "Monitor soil moisture levels")
		}
	}

	if market, ok := cleanMap(data["market"]); ok {
		if trend, _ := market["trend"].(string); trend == "Rising" {
			recs.Opportunities = append(recs.Opportunities, "Consider planting crops with rising market prices")
		}
	}

	if policies, ok := data["policies"]; ok && !isEmptyPayload(policies) {
		recs.Opportunities = append(recs.Opportunities, "Explore available government schemes and subsidies")
	}

	return recs
}

// AggregateConfidence combines advisor confidences with an external data
// quality score. Quality is 1 minus the errored-source fraction when
// sources exist, else the neutral 0.5. The result is the unweighted mean.
func AggregateConfidence(confidences []float64, data external.Data) float64 {
	quality := 0.5
	if len(data) > 0 {
		quality = 1 - data.ErrorRatio()
		if quality < 0 {
			quality = 0
		}
	}

	scores := append(append([]float64(nil), confidences...), quality)
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// relevanceScore is the fraction of keywords present in the query.
func relevanceScore(query string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(query)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

// cleanMap returns the payload as a map when it exists and carries no
// error marker.
func cleanMap(payload any) (map[string]any, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, errored := m["error"]; errored {
		return nil, false
	}
	return m, true
}

func isEmptyPayload(payload any) bool {
	switch v := payload.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func getFloat(m map[string]any, key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}
