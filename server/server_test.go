package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/analysis"
	"github.com/krishisetu/krishisetu/config"
	"github.com/krishisetu/krishisetu/crew"
	"github.com/krishisetu/krishisetu/external"
	"github.com/krishisetu/krishisetu/querylog"
)

type staticWeatherService struct{}

func (staticWeatherService) Current(ctx context.Context, location string) (advisor.Conditions, error) {
	return advisor.Conditions{Temperature: 31, Humidity: 48, Description: "clear sky"}, nil
}

func (staticWeatherService) Forecast(ctx context.Context, location string) ([]advisor.ForecastEntry, error) {
	return []advisor.ForecastEntry{{Time: "2026-08-28 12:00", Temperature: 32}}, nil
}

type staticProvider struct{}

func (staticProvider) Weather(ctx context.Context, location string) any {
	return map[string]any{"temperature": 31.0}
}
func (staticProvider) Soil(ctx context.Context, location string) any {
	return map[string]any{"ph": 6.8}
}
func (staticProvider) Market(ctx context.Context, crop string) any {
	return map[string]any{"trend": "Rising"}
}
func (staticProvider) Policies(ctx context.Context, state string) any {
	return []any{map[string]any{"name": "PM-KISAN"}}
}
func (staticProvider) Comprehensive(ctx context.Context, location, crop, state string) external.Data {
	return external.Data{
		"weather": map[string]any{"temperature": 31.0},
		"soil":    map[string]any{"ph": 6.8},
	}
}

func newTestServer(t *testing.T) (*Server, *querylog.InMemoryStore) {
	t.Helper()

	weather := advisor.NewWeatherAdvisor(staticWeatherService{})
	crop := advisor.NewCropAdvisor()
	finance := advisor.NewFinanceAdvisor()
	c := crew.New(weather, crop, finance, staticProvider{})

	svc, err := analysis.NewService(nil)
	if err != nil {
		t.Fatalf("analysis.NewService: %v", err)
	}

	store := querylog.NewInMemoryStore()
	srv := New(config.Server{Host: "127.0.0.1", Port: 0}, Deps{
		Crew:     c,
		Weather:  weather,
		Crop:     crop,
		Finance:  finance,
		Analysis: svc,
		Store:    store,
	})
	return srv, store
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestSimpleQueryRoutesAndRecords(t *testing.T) {
	srv, store := newTestServer(t)

	rr := postJSON(t, srv.Handler(), "/api/v1/query", QueryRequest{Query: "what loans are available for farmers"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp QueryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Errorf("response = %+v", resp)
	}
	if resp.Source != "Finance Advisor" {
		t.Errorf("source = %q, want Finance Advisor", resp.Source)
	}
	if resp.Classification == nil || resp.Classification.Language != "en" {
		t.Errorf("classification = %+v", resp.Classification)
	}

	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 || records[0].Mode != "simple" {
		t.Errorf("records = %+v", records)
	}
}

func TestQueryRejectsEmptyBody(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := postJSON(t, srv.Handler(), "/api/v1/query", QueryRequest{Query: "  "})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestComprehensiveQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := postJSON(t, srv.Handler(), "/api/v1/query", QueryRequest{
		Query:         "complete advice for my farm",
		Comprehensive: true,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool                        `json:"success"`
		Data    *crew.ComprehensiveResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatalf("response = %+v", resp)
	}
	if len(resp.Data.AgentInsights) != 3 {
		t.Errorf("agent insights = %d, want 3", len(resp.Data.AgentInsights))
	}
	if resp.Data.Recommendations.ImmediateActions == nil {
		t.Error("recommendation categories must be present")
	}
}

func TestDirectAdvisorEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := postJSON(t, srv.Handler(), "/api/v1/query/weather", QueryRequest{Query: "weather today"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp QueryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Source != "Weather Advisor" {
		t.Errorf("source = %q", resp.Source)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("query", "how is my soil"); err != nil {
		t.Fatal(err)
	}
	fw, err := mw.CreateFormFile("files", "soil_report.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("soil test: nitrogen low, potassium adequate, fertility moderate"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp analysis.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || len(resp.Verdicts) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestReportEndpointCSV(t *testing.T) {
	srv, _ := newTestServer(t)

	data, _ := json.Marshal(QueryRequest{Query: "farm report"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/report?format=csv", bytes.NewReader(data))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "section,key,value") {
		t.Errorf("body = %q", rr.Body.String()[:40])
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/v1/agents",
		"/api/v1/supported-languages",
		"/api/v1/crops",
		"/api/v1/soil-types",
		"/api/v1/examples",
		"/api/v1/queries",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rr.Code)
		}
	}
}

type deadlineWeatherService struct {
	sawDeadline bool
}

func (d *deadlineWeatherService) Current(ctx context.Context, location string) (advisor.Conditions, error) {
	_, d.sawDeadline = ctx.Deadline()
	return advisor.Conditions{Temperature: 30, Humidity: 50}, nil
}

func (d *deadlineWeatherService) Forecast(ctx context.Context, location string) ([]advisor.ForecastEntry, error) {
	return nil, nil
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	svc := &deadlineWeatherService{}
	weather := advisor.NewWeatherAdvisor(svc)
	crop := advisor.NewCropAdvisor()
	finance := advisor.NewFinanceAdvisor()

	analysisSvc, err := analysis.NewService(nil)
	if err != nil {
		t.Fatalf("analysis.NewService: %v", err)
	}
	srv := New(config.Server{Host: "127.0.0.1", Port: 0, RequestTimeout: 1}, Deps{
		Crew:     crew.New(weather, crop, finance, staticProvider{}),
		Weather:  weather,
		Crop:     crop,
		Finance:  finance,
		Analysis: analysisSvc,
		Store:    querylog.NewInMemoryStore(),
	})

	rr := postJSON(t, srv.Handler(), "/api/v1/query/weather", QueryRequest{Query: "weather today"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if !svc.sawDeadline {
		t.Error("pipeline context carried no deadline")
	}
}

type blockingProvider struct{}

func (blockingProvider) Weather(ctx context.Context, location string) any { return nil }
func (blockingProvider) Soil(ctx context.Context, location string) any   { return nil }
func (blockingProvider) Market(ctx context.Context, crop string) any     { return nil }
func (blockingProvider) Policies(ctx context.Context, state string) any  { return nil }

func (blockingProvider) Comprehensive(ctx context.Context, location, crop, state string) external.Data {
	<-ctx.Done()
	return external.Data{}
}

func TestRequestTimeoutExpiryReturnsFailure(t *testing.T) {
	weather := advisor.NewWeatherAdvisor(staticWeatherService{})
	crop := advisor.NewCropAdvisor()
	finance := advisor.NewFinanceAdvisor()

	analysisSvc, err := analysis.NewService(nil)
	if err != nil {
		t.Fatalf("analysis.NewService: %v", err)
	}
	srv := New(config.Server{Host: "127.0.0.1", Port: 0, RequestTimeout: 1}, Deps{
		Crew:     crew.New(weather, crop, finance, blockingProvider{}),
		Weather:  weather,
		Crop:     crop,
		Finance:  finance,
		Analysis: analysisSvc,
		Store:    querylog.NewInMemoryStore(),
	})

	rr := postJSON(t, srv.Handler(), "/api/v1/query", QueryRequest{
		Query:         "complete advice for my farm",
		Comprehensive: true,
	})
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504: %s", rr.Code, rr.Body.String())
	}
	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == "" {
		t.Error("failure envelope must carry an error message")
	}
}

func TestAnalyzeWithoutServiceReturnsUnavailable(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.deps.Analysis = nil

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "soil_report.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("soil test"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "llm provider unavailable") {
		t.Errorf("body = %s", rr.Body.String())
	}
}
