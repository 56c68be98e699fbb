package advisor

import (
	"context"
	"fmt"
	"strings"
)

// Suitability is the scored assessment of one crop under the request
// context.
type Suitability struct {
	Score          int      `json:"suitability_score"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// CropAdvisor answers crop selection and management queries from the static
// agronomy tables.
type CropAdvisor struct{}

// NewCropAdvisor creates the crop advisor.
func NewCropAdvisor() *CropAdvisor {
	return &CropAdvisor{}
}

func (a *CropAdvisor) Name() string { return "Crop Advisor" }

func (a *CropAdvisor) Keywords() []string {
	return []string{
		"crop", "seed", "variety", "planting", "harvest", "yield", "pest",
		"disease", "fertilizer", "soil", "season", "market", "price",
		"फसल", "बीज", "किस्म", "रोपण", "फसल काटना", "उपज", "कीट",
		"रोग", "खाद", "मिट्टी", "मौसम", "बाजार", "कीमत",
	}
}

func (a *CropAdvisor) Confidence(text string) float64 {
	return keywordConfidence(text, a.Keywords())
}

// ProcessQuery assembles recommendations, suitability analysis, market data
// and the seasonal calendar for the request context.
func (a *CropAdvisor) ProcessQuery(ctx context.Context, query string, qc *QueryContext) Result {
	recommendations := a.Recommendations(qc.location(), qc.soilType(), qc.season())

	return Result{
		Success: true,
		Data: map[string]any{
			"recommendations":      recommendations,
			"suitability_analysis": a.SuitabilityAnalysis(recommendations, qc),
			"market_data":          a.MarketPrices(recommendations),
			"crop_calendar":        a.Calendar(qc.season()),
			"timestamp":            nowISO(),
		},
		Confidence: a.Confidence(query),
		Source:     a.Name(),
	}
}

// Recommendations returns the crops suited to the season and soil type.
// Unknown combinations yield an empty list, never an error.
func (a *CropAdvisor) Recommendations(location, soilType, season string) []CropOption {
	bySoil, ok := cropDatabase[season]
	if !ok {
		return nil
	}
	return bySoil[soilType]
}

// SuitabilityAnalysis scores each crop against the context hints:
// +20 temperature below 35, +25 high water availability (else +20 for a
// low-water crop), +25 high market demand, +15 low pest pressure, +15 high
// budget, clipped at 100. Tiers: >=80 Highly Recommended, >=60 Recommended,
// else Moderate.
func (a *CropAdvisor) SuitabilityAnalysis(crops []CropOption, qc *QueryContext) map[string]Suitability {
	analysis := make(map[string]Suitability, len(crops))

	for _, crop := range crops {
		score := 0
		var factors []string

		if qc.temperature() < 35 {
			score += 20
			factors = append(factors, "Favorable temperature")
		}

		if qc.waterAvailability() == "high" {
			score += 25
			factors = append(factors, "Good water availability")
		} else if crop.WaterNeed == "Low" {
			score += 20
			factors = append(factors, "Low water requirement")
		}

		if qc.marketDemand() == "high" {
			score += 25
			factors = append(factors, "High market demand")
		}

		if qc.pestPressure() == "low" {
			score += 15
			factors = append(factors, "Low pest pressure")
		}

		if qc.budget() == "high" {
			score += 15
			factors = append(factors, "High budget for inputs")
		}

		if score > 100 {
			score = 100
		}

		tier := "Moderate"
		if score >= 80 {
			tier = "Highly Recommended"
		} else if score >= 60 {
			tier = "Recommended"
		}

		analysis[crop.Name] = Suitability{
			Score:          score,
			Factors:        factors,
			Recommendation: tier,
		}
	}

	return analysis
}

// MarketPrices returns the price snapshot for each recommended crop, with
// an Unknown-trend default for crops missing from the table.
func (a *CropAdvisor) MarketPrices(crops []CropOption) map[string]MarketPrice {
	prices := make(map[string]MarketPrice, len(crops))
	for _, crop := range crops {
		price, ok := priceTable[crop.Name]
		if !ok {
			price = MarketPrice{Unit: "per quintal", Trend: "Unknown"}
		}
		prices[crop.Name] = price
	}
	return prices
}

// Calendar returns the activity calendar for the season; unknown seasons
// yield the zero calendar.
func (a *CropAdvisor) Calendar(season string) CropCalendar {
	return calendarTable[season]
}

// PestRisks lists known pests for a crop and bands the risk by pest count.
type PestRisks struct {
	Pests           []string `json:"pests"`
	RiskLevel       string   `json:"risk_level"`
	Recommendations string   `json:"recommendations"`
}

// AnalyzePestRisks reports the pest exposure for a crop.
func (a *CropAdvisor) AnalyzePestRisks(cropName string) PestRisks {
	pests := pestTable[cropName]

	level := "Low"
	if len(pests) > 2 {
		level = "High"
	} else if len(pests) > 1 {
		level = "Medium"
	}

	rec := "No significant pest pressure known for this crop"
	if len(pests) > 0 {
		rec = fmt.Sprintf("Monitor for %s and apply preventive measures", strings.Join(pests, ", "))
	}

	return PestRisks{
		Pests:           pests,
		RiskLevel:       level,
		Recommendations: rec,
	}
}
