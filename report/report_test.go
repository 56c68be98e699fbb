package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/krishisetu/krishisetu/crew"
)

func TestBuildAlwaysPopulatesCategories(t *testing.T) {
	// Recommendations deliberately left with nil slices.
	resp := &crew.ComprehensiveResponse{
		CrewResult:        "Direct agent processing (no LLM available)",
		OverallConfidence: 0.62,
		Source:            "Agricultural Crew (Direct Processing)",
	}

	obj := Build(resp)
	recs, ok := obj["recommendations"].(map[string][]string)
	if !ok {
		t.Fatalf("recommendations type = %T", obj["recommendations"])
	}

	for _, key := range categoryOrder {
		list, ok := recs[key]
		if !ok {
			t.Errorf("category %q missing", key)
			continue
		}
		if list == nil {
			t.Errorf("category %q is nil, want empty list", key)
		}
	}
}

func TestBuildNilResponse(t *testing.T) {
	obj := Build(nil)
	for _, key := range []string{"crew_result", "overall_confidence", "source", "timestamp", "external_data", "agent_insights", "recommendations"} {
		if _, ok := obj[key]; !ok {
			t.Errorf("top-level key %q missing", key)
		}
	}
}

func TestCSVBytes(t *testing.T) {
	resp := &crew.ComprehensiveResponse{
		CrewResult:        "summary text",
		OverallConfidence: 0.7,
		Source:            "Agricultural Crew",
		Recommendations: crew.Recommendations{
			ImmediateActions: []string{"Increase irrigation frequency due to high temperature"},
			Opportunities:    []string{"Explore available government schemes and subsidies"},
		},
	}

	data, err := CSVBytes(Build(resp))
	if err != nil {
		t.Fatalf("CSVBytes: %v", err)
	}

	text := string(data)
	if !strings.HasPrefix(text, "section,key,value\n") {
		t.Errorf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "immediate_actions,Increase irrigation frequency due to high temperature") {
		t.Errorf("missing recommendation row:\n%s", text)
	}
}

func TestDocxBytes(t *testing.T) {
	resp := &crew.ComprehensiveResponse{
		CrewResult:        "Plant rice this Kharif season.",
		OverallConfidence: 0.8,
		Source:            "Agricultural Crew",
		Timestamp:         "2026-08-28T10:00:00Z",
		Recommendations: crew.Recommendations{
			ImmediateActions: []string{"Irrigate within 24 hours"},
		},
	}

	data, err := DocxBytes(Build(resp))
	if err != nil {
		t.Fatalf("DocxBytes: %v", err)
	}
	// DOCX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output does not look like a docx archive: % x", data[:4])
	}
}
