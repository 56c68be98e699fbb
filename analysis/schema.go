package analysis

import (
	"encoding/json"
	"fmt"
)

// RangeValue is a measured quantity with an average and a textual range.
// The range accepts the shapes LLMs actually emit: a "lo - hi" string, a
// {min, max} object or a two-element list.
type RangeValue struct {
	Average float64 `json:"average"`
	Range   string  `json:"range"`
}

func (r *RangeValue) UnmarshalJSON(data []byte) error {
	var aux struct {
		Average float64         `json:"average"`
		Range   json.RawMessage `json:"range"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Average = aux.Average

	if len(aux.Range) == 0 || string(aux.Range) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(aux.Range, &s); err == nil {
		r.Range = s
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(aux.Range, &obj); err == nil {
		lo := firstOf(obj, "min", "low", "minimum")
		hi := firstOf(obj, "max", "high", "maximum")
		if lo != nil && hi != nil {
			r.Range = fmt.Sprintf("%v - %v", lo, hi)
			return nil
		}
		return fmt.Errorf("analysis: range object missing min/max bounds")
	}

	var list []any
	if err := json.Unmarshal(aux.Range, &list); err == nil {
		if len(list) != 2 {
			return fmt.Errorf("analysis: range list must hold exactly two values")
		}
		r.Range = fmt.Sprintf("%v - %v", list[0], list[1])
		return nil
	}

	return fmt.Errorf("analysis: unsupported range shape %s", aux.Range)
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// NutrientStats holds the major soil nutrient measurements.
type NutrientStats struct {
	Nitrogen   RangeValue `json:"nitrogen_kg_per_ha"`
	Phosphorus RangeValue `json:"phosphorus_kg_per_ha"`
	Potassium  RangeValue `json:"potassium_kg_per_ha"`
}

// Soil summarizes soil condition across the analyzed documents.
type Soil struct {
	Type          string        `json:"type"`
	PH            RangeValue    `json:"ph"`
	Moisture      RangeValue    `json:"moisture_percentage"`
	OrganicCarbon RangeValue    `json:"organic_carbon_percentage"`
	Nutrients     NutrientStats `json:"nutrients"`
}

// Crop summarizes the crops under cultivation.
type Crop struct {
	Types        []string `json:"types"`
	Season       string   `json:"season"`
	GrowthStages []string `json:"growth_stages"`
}

// Rainfall splits observed and forecast precipitation.
type Rainfall struct {
	Last24h     RangeValue `json:"last_24h"`
	Forecast24h RangeValue `json:"forecast_24h"`
}

// Weather summarizes weather conditions.
type Weather struct {
	Temperature RangeValue `json:"temperature_c"`
	Humidity    RangeValue `json:"humidity_pct"`
	Rainfall    Rainfall   `json:"rainfall_mm"`
	WindSpeed   RangeValue `json:"wind_speed_mps"`
}

// Finance summarizes market and scheme context.
type Finance struct {
	MarketPrice       RangeValue `json:"market_price_inr_per_quintal"`
	MarketTrend       string     `json:"market_trend"`
	ApplicableSchemes []string   `json:"applicable_schemes"`
}

// PestRisk bands pest exposure with notable named risks.
type PestRisk struct {
	Average      string   `json:"average"`
	NotableRisks []string `json:"notable_risks"`
}

// IrrigationNeed bands irrigation demand with specific needs.
type IrrigationNeed struct {
	Average       string   `json:"average"`
	SpecificNeeds []string `json:"specific_needs"`
}

// Risks groups the identified risk dimensions.
type Risks struct {
	PestRisk       PestRisk       `json:"pest_risk"`
	IrrigationNeed IrrigationNeed `json:"irrigation_need"`
}

// SpecificAction is one crop-specific recommendation.
type SpecificAction struct {
	Crop   string `json:"crop"`
	Action string `json:"action"`
}

// ActionPlan pairs general guidance with crop-specific actions.
type ActionPlan struct {
	General  string           `json:"general"`
	Specific []SpecificAction `json:"specific"`
}

// Recommendations groups the recommended actions by concern.
type Recommendations struct {
	Irrigation     ActionPlan `json:"irrigation"`
	CropManagement ActionPlan `json:"crop_management"`
}

// AgriculturalAnalysis is the fixed shape an LLM analysis must conform to.
type AgriculturalAnalysis struct {
	Soil            Soil            `json:"soil"`
	Crop            Crop            `json:"crop"`
	Weather         Weather         `json:"weather"`
	Finance         Finance         `json:"finance"`
	Risks           Risks           `json:"risks"`
	Recommendations Recommendations `json:"recommendations"`
	Summary         string          `json:"summary"`
}
