package document

import (
	"fmt"
	"strings"
)

// Type is the document category assigned by the classifier.
type Type string

const (
	TypeSoilReport       Type = "soil_report"
	TypeCropReport       Type = "crop_report"
	TypeWeatherReport    Type = "weather_report"
	TypeIrrigationReport Type = "irrigation_report"
	TypeFinancialReport  Type = "financial_report"
	TypeIrrelevant       Type = "irrelevant"
	TypeUnknown          Type = "unknown"
)

// Verdict is the relevance decision for one document. IsRelevant=false
// implies Type is TypeIrrelevant or TypeUnknown.
type Verdict struct {
	Filename   string  `json:"filename"`
	IsRelevant bool    `json:"is_relevant"`
	Type       Type    `json:"document_type"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// category keyword lists checked against filename + content. Order fixes
// tie-breaking.
var categories = []struct {
	docType  Type
	keywords []string
}{
	{TypeSoilReport, []string{
		"soil", "ph", "nitrogen", "phosphorus", "potassium", "organic carbon",
		"fertility", "micronutrient", "soil health", "मिट्टी", "मृदा", "उर्वरता",
	}},
	{TypeCropReport, []string{
		"crop", "yield", "harvest", "seed", "variety", "sowing", "cultivation",
		"pest", "fertilizer", "फसल", "बीज", "खेती", "कीट", "उर्वरक",
	}},
	{TypeWeatherReport, []string{
		"weather", "rainfall", "temperature", "humidity", "monsoon", "forecast",
		"climate", "precipitation", "मौसम", "बारिश", "तापमान", "जलवायु",
	}},
	{TypeIrrigationReport, []string{
		"irrigation", "water", "drip", "sprinkler", "canal", "borewell",
		"water table", "moisture", "सिंचाई", "पानी", "नहर", "नमी",
	}},
	{TypeFinancialReport, []string{
		"loan", "credit", "subsidy", "insurance", "bank", "interest",
		"scheme", "income", "expense", "ऋण", "सब्सिडी", "बीमा", "बैंक", "योजना",
	}},
}

// irrelevantSignals flag documents from outside agriculture.
var irrelevantSignals = []string{
	"curriculum", "syllabus", "university", "semester", "thesis",
	"prescription", "diagnosis", "patient", "hospital", "clinical",
	"passport", "aadhaar", "pan card", "driving licence", "voter id",
	"invoice", "receipt", "purchase order", "shopping", "warranty",
	"resume", "salary slip",
}

// basicAgriKeywords decide weak-signal documents.
var basicAgriKeywords = []string{
	"farm", "farmer", "agriculture", "agricultural",
	"किसान", "खेत", "कृषि",
}

// Classify decides whether a document is agriculturally relevant and which
// category it belongs to. The checks run in a fixed short-circuit order:
// extraction failure, irrelevance signals, weak-signal fallback, category
// maximum.
func Classify(filename, content string) Verdict {
	if strings.Contains(content, ErrorMarker) {
		return Verdict{
			Filename:   filename,
			IsRelevant: false,
			Type:       TypeUnknown,
			Confidence: 0.0,
			Reason:     "text extraction failed",
		}
	}

	haystack := strings.ToLower(filename + " " + content)

	if count := countMatches(haystack, irrelevantSignals); count > 2 {
		return Verdict{
			Filename:   filename,
			IsRelevant: false,
			Type:       TypeIrrelevant,
			Confidence: 0.8,
			Reason:     fmt.Sprintf("%d non-agricultural signals found", count),
		}
	}

	maxCount := 0
	maxType := TypeUnknown
	for _, cat := range categories {
		if count := countMatches(haystack, cat.keywords); count > maxCount {
			maxCount = count
			maxType = cat.docType
		}
	}

	if maxCount < 2 {
		if countMatches(haystack, basicAgriKeywords) > 0 {
			return Verdict{
				Filename:   filename,
				IsRelevant: true,
				Type:       TypeUnknown,
				Confidence: 0.3,
				Reason:     "generic agricultural content without a clear category",
			}
		}
		return Verdict{
			Filename:   filename,
			IsRelevant: false,
			Type:       TypeIrrelevant,
			Confidence: 0.7,
			Reason:     "no agricultural content found",
		}
	}

	confidence := float64(maxCount) / 10.0
	if confidence > 0.9 {
		confidence = 0.9
	}
	return Verdict{
		Filename:   filename,
		IsRelevant: true,
		Type:       maxType,
		Confidence: confidence,
		Reason:     fmt.Sprintf("%d %s keywords found", maxCount, maxType),
	}
}

// ClassifyBatch classifies every extraction in a batch.
func ClassifyBatch(extractions []Extraction) []Verdict {
	verdicts := make([]Verdict, 0, len(extractions))
	for _, e := range extractions {
		verdicts = append(verdicts, Classify(e.Filename, e.Content))
	}
	return verdicts
}

// AllIrrelevant reports whether no document in the batch was relevant.
func AllIrrelevant(verdicts []Verdict) bool {
	for _, v := range verdicts {
		if v.IsRelevant {
			return false
		}
	}
	return true
}

func countMatches(haystack string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			count++
		}
	}
	return count
}
