// Package report shapes a comprehensive response into a stable object and
// renders it to CSV and DOCX byte streams.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"

	"github.com/krishisetu/krishisetu/crew"
)

// recommendation categories in render order.
var categoryOrder = []string{
	"immediate_actions",
	"short_term_plan",
	"long_term_strategy",
	"risk_mitigation",
	"opportunities",
}

var categoryTitles = map[string]string{
	"immediate_actions":  "Immediate Actions",
	"short_term_plan":    "Short Term Plan",
	"long_term_strategy": "Long Term Strategy",
	"risk_mitigation":    "Risk Mitigation",
	"opportunities":      "Opportunities",
}

// Build flattens a comprehensive response into a renderer-ready object.
// Every top-level key is always present and every recommendation category
// is a non-nil list, so renderers never need to null-check.
func Build(resp *crew.ComprehensiveResponse) map[string]any {
	out := map[string]any{
		"crew_result":        "",
		"overall_confidence": 0.0,
		"source":             "",
		"timestamp":          "",
		"external_data":      map[string]any{},
		"agent_insights":     map[string]any{},
		"recommendations":    emptyCategories(),
	}
	if resp == nil {
		return out
	}

	out["crew_result"] = resp.CrewResult
	out["overall_confidence"] = resp.OverallConfidence
	out["source"] = resp.Source
	out["timestamp"] = resp.Timestamp

	if resp.ExternalData != nil {
		external := make(map[string]any, len(resp.ExternalData))
		for k, v := range resp.ExternalData {
			external[k] = v
		}
		out["external_data"] = external
	}

	insights := make(map[string]any, len(resp.AgentInsights))
	for k, v := range resp.AgentInsights {
		insights[k] = v
	}
	out["agent_insights"] = insights

	recs := emptyCategories()
	fill := func(key string, values []string) {
		if values != nil {
			recs[key] = values
		}
	}
	fill("immediate_actions", resp.Recommendations.ImmediateActions)
	fill("short_term_plan", resp.Recommendations.ShortTermPlan)
	fill("long_term_strategy", resp.Recommendations.LongTermStrategy)
	fill("risk_mitigation", resp.Recommendations.RiskMitigation)
	fill("opportunities", resp.Recommendations.Opportunities)
	out["recommendations"] = recs

	return out
}

func emptyCategories() map[string][]string {
	recs := make(map[string][]string, len(categoryOrder))
	for _, key := range categoryOrder {
		recs[key] = []string{}
	}
	return recs
}

// CSVBytes renders the report object as CSV rows of (section, key, value).
func CSVBytes(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"section", "key", "value"}); err != nil {
		return nil, fmt.Errorf("report: write csv header: %w", err)
	}

	rows := [][]string{
		{"summary", "crew_result", fmt.Sprintf("%v", obj["crew_result"])},
		{"summary", "overall_confidence", fmt.Sprintf("%v", obj["overall_confidence"])},
		{"summary", "source", fmt.Sprintf("%v", obj["source"])},
		{"summary", "timestamp", fmt.Sprintf("%v", obj["timestamp"])},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("report: write csv row: %w", err)
		}
	}

	if recs, ok := obj["recommendations"].(map[string][]string); ok {
		for _, key := range categoryOrder {
			for _, item := range recs[key] {
				if err := w.Write([]string{"recommendations", key, item}); err != nil {
					return nil, fmt.Errorf("report: write csv row: %w", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("report: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DocxBytes renders the report object as a Word document.
func DocxBytes(obj map[string]any) ([]byte, error) {
	f := docx.NewFile()

	titleP := f.AddParagraph()
	titleRun := titleP.AddText("Agricultural Advisory Report")
	titleRun.Size(20)
	f.AddParagraph()

	meta := f.AddParagraph()
	metaRun := meta.AddText(fmt.Sprintf("Source: %v | Confidence: %.2f | Generated: %v",
		obj["source"], toFloat(obj["overall_confidence"]), obj["timestamp"]))
	metaRun.Size(10)
	metaRun.Color("808080")
	f.AddParagraph()

	if summary, _ := obj["crew_result"].(string); summary != "" {
		p := f.AddParagraph()
		run := p.AddText("Summary")
		run.Size(16)
		for _, line := range strings.Split(summary, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				f.AddParagraph().AddText(line)
			}
		}
		f.AddParagraph()
	}

	if recs, ok := obj["recommendations"].(map[string][]string); ok {
		for _, key := range categoryOrder {
			p := f.AddParagraph()
			run := p.AddText(categoryTitles[key])
			run.Size(14)

			items := recs[key]
			if len(items) == 0 {
				f.AddParagraph().AddText("No advice in this category")
				continue
			}
			for _, item := range items {
				f.AddParagraph().AddText("- " + item)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: render docx: %w", err)
	}
	return buf.Bytes(), nil
}

func toFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
