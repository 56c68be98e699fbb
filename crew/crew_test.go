package crew

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/external"
)

type stubAdvisor struct {
	name     string
	keywords []string
	result   advisor.Result
}

func (s *stubAdvisor) Name() string       { return s.name }
func (s *stubAdvisor) Keywords() []string { return s.keywords }
func (s *stubAdvisor) Confidence(text string) float64 {
	return 0.5
}
func (s *stubAdvisor) ProcessQuery(ctx context.Context, query string, qc *advisor.QueryContext) advisor.Result {
	return s.result
}

type stubProvider struct {
	data external.Data
}

func (s *stubProvider) Weather(ctx context.Context, location string) any  { return s.data["weather"] }
func (s *stubProvider) Soil(ctx context.Context, location string) any    { return s.data["soil"] }
func (s *stubProvider) Market(ctx context.Context, crop string) any      { return s.data["market"] }
func (s *stubProvider) Policies(ctx context.Context, state string) any   { return s.data["policies"] }
func (s *stubProvider) Comprehensive(ctx context.Context, location, crop, state string) external.Data {
	return s.data
}

func testCrew(provider external.Provider, opts ...Option) *Crew {
	weather := &stubAdvisor{
		name:     "Weather Advisor",
		keywords: []string{"weather", "rain"},
		result:   advisor.Result{Success: true, Confidence: 0.8, Source: "Weather Advisor"},
	}
	crop := &stubAdvisor{
		name:     "Crop Advisor",
		keywords: []string{"crop", "plant"},
		result:   advisor.Result{Success: true, Confidence: 0.6, Source: "Crop Advisor"},
	}
	finance := &stubAdvisor{
		name:     "Finance Advisor",
		keywords: []string{"loan", "scheme"},
		result:   advisor.Result{Success: true, Confidence: 0.4, Source: "Finance Advisor"},
	}
	return New(weather, crop, finance, provider, opts...)
}

func TestProcessSimpleRoutesToMostRelevant(t *testing.T) {
	c := testCrew(&stubProvider{})

	tests := []struct {
		query      string
		wantSource string
	}{
		{"will it rain on my weather station", "Weather Advisor"},
		{"which crop should I plant", "Crop Advisor"},
		{"how do I get a loan under this scheme", "Finance Advisor"},
	}

	for _, tt := range tests {
		res := c.ProcessSimple(context.Background(), tt.query, &advisor.QueryContext{})
		if res.Source != tt.wantSource {
			t.Errorf("query %q routed to %q, want %q", tt.query, res.Source, tt.wantSource)
		}
	}
}

func TestProcessSimpleTieBreaksInDeclarationOrder(t *testing.T) {
	c := testCrew(&stubProvider{})
	// No keywords match, all scores are zero.
	res := c.ProcessSimple(context.Background(), "hello", &advisor.QueryContext{})
	if res.Source != "Weather Advisor" {
		t.Errorf("zero-score tie routed to %q, want Weather Advisor", res.Source)
	}
}

func TestProcessComprehensive(t *testing.T) {
	provider := &stubProvider{data: external.Data{
		"weather":  map[string]any{"temperature": 34.0, "humidity": 42.0},
		"market":   map[string]any{"trend": "Rising"},
		"policies": []any{map[string]any{"name": "PM-KISAN"}},
	}}
	c := testCrew(provider)

	resp, err := c.ProcessComprehensive(context.Background(), "complete farm advice", &advisor.QueryContext{})
	if err != nil {
		t.Fatalf("ProcessComprehensive: %v", err)
	}

	if len(resp.AgentInsights) != 3 {
		t.Fatalf("agent insights = %d, want 3", len(resp.AgentInsights))
	}
	if resp.CrewResult != "Direct agent processing (no LLM available)" {
		t.Errorf("crew result = %q", resp.CrewResult)
	}
	if resp.Source != "Agricultural Crew (Direct Processing)" {
		t.Errorf("source = %q", resp.Source)
	}

	// 3 advisors (0.8, 0.6, 0.4) + perfect external data (1.0).
	want := (0.8 + 0.6 + 0.4 + 1.0) / 4
	if math.Abs(resp.OverallConfidence-want) > 1e-9 {
		t.Errorf("overall confidence = %v, want %v", resp.OverallConfidence, want)
	}

	recs := resp.Recommendations
	if len(recs.ImmediateActions) != 2 {
		t.Errorf("immediate actions = %v, want heat and moisture advice", recs.ImmediateActions)
	}
	if len(recs.Opportunities) != 2 {
		t.Errorf("opportunities = %v, want market and scheme advice", recs.Opportunities)
	}
}

type fixedSummarizer struct {
	text string
	err  error
}

func (f *fixedSummarizer) Complete(ctx context.Context, system, user string) (string, error) {
	return f.text, f.err
}

func TestProcessComprehensiveWithSummarizer(t *testing.T) {
	c := testCrew(&stubProvider{}, WithSummarizer(&fixedSummarizer{text: "Plant rice and irrigate twice weekly."}))

	resp, err := c.ProcessComprehensive(context.Background(), "advice", &advisor.QueryContext{})
	if err != nil {
		t.Fatalf("ProcessComprehensive: %v", err)
	}
	if resp.CrewResult != "Plant rice and irrigate twice weekly." {
		t.Errorf("crew result = %q", resp.CrewResult)
	}
	if resp.Source != "Agricultural Crew" {
		t.Errorf("source = %q", resp.Source)
	}
}

func TestProcessComprehensiveSummarizerFailureDegrades(t *testing.T) {
	c := testCrew(&stubProvider{}, WithSummarizer(&fixedSummarizer{err: errors.New("rate limited")}))

	resp, err := c.ProcessComprehensive(context.Background(), "advice", &advisor.QueryContext{})
	if err != nil {
		t.Fatalf("ProcessComprehensive: %v", err)
	}
	if resp.CrewResult != "Direct agent processing (no LLM available)" {
		t.Errorf("crew result = %q", resp.CrewResult)
	}
}

func TestSynthesizeRecommendations(t *testing.T) {
	tests := []struct {
		name string
		data external.Data
		want func(t *testing.T, recs Recommendations)
	}{
		{
			name: "empty data yields empty but present categories",
			data: external.Data{},
			want: func(t *testing.T, recs Recommendations) {
				if recs.ImmediateActions == nil || recs.Opportunities == nil ||
					recs.ShortTermPlan == nil || recs.LongTermStrategy == nil || recs.RiskMitigation == nil {
					t.Error("all five categories must be non-nil")
				}
				if len(recs.ImmediateActions) != 0 || len(recs.Opportunities) != 0 {
					t.Errorf("expected empty advice, got %+v", recs)
				}
			},
		},
		{
			name: "errored weather contributes nothing",
			data: external.Data{"weather": map[string]any{"error": "down", "temperature": 40.0}},
			want: func(t *testing.T, recs Recommendations) {
				if len(recs.ImmediateActions) != 0 {
					t.Errorf("errored source must not produce advice: %v", recs.ImmediateActions)
				}
			},
		},
		{
			name: "hot weather triggers irrigation action",
			data: external.Data{"weather": map[string]any{"temperature": 31.0, "humidity": 65.0}},
			want: func(t *testing.T, recs Recommendations) {
				if len(recs.ImmediateActions) != 1 {
					t.Fatalf("immediate actions = %v", recs.ImmediateActions)
				}
			},
		},
		{
			name: "flat market trend is not an opportunity",
			data: external.Data{"market": map[string]any{"trend": "Stable"}},
			want: func(t *testing.T, recs Recommendations) {
				if len(recs.Opportunities) != 0 {
					t.Errorf("opportunities = %v", recs.Opportunities)
				}
			},
		},
		{
			name: "empty policies list is not an opportunity",
			data: external.Data{"policies": []any{}},
			want: func(t *testing.T, recs Recommendations) {
				if len(recs.Opportunities) != 0 {
					t.Errorf("opportunities = %v", recs.Opportunities)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, SynthesizeRecommendations(tt.data))
		})
	}
}

func TestAggregateConfidence(t *testing.T) {
	tests := []struct {
		name        string
		confidences []float64
		data        external.Data
		want        float64
	}{
		{"no inputs at all", nil, nil, 0.5},
		{"advisors only", []float64{0.8, 0.6}, nil, (0.8 + 0.6 + 0.5) / 3},
		{"perfect external data", []float64{1.0}, external.Data{"weather": map[string]any{}}, 1.0},
		{"all sources errored", nil, external.Data{"weather": map[string]any{"error": "x"}}, 0.0},
		{"half errored", []float64{0.5}, external.Data{
			"weather": map[string]any{"error": "x"},
			"soil":    map[string]any{},
		}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateConfidence(tt.confidences, tt.data)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AggregateConfidence = %v, want %v", got, tt.want)
			}
		})
	}
}
