// Package advisor implements the specialized advisory responders. Each
// advisor turns a query plus optional context hints into a structured
// result with a self-reported confidence score.
package advisor

import (
	"context"
	"strings"
	"time"
)

// QueryContext carries optional per-request hints. No field is mandatory;
// consumers substitute a default for any absent value. A zero Temperature
// means "not provided".
type QueryContext struct {
	Location          string  `json:"location,omitempty"`
	SoilType          string  `json:"soil_type,omitempty"`
	Season            string  `json:"season,omitempty"` // Kharif | Rabi | Zaid
	Budget            string  `json:"budget,omitempty"`
	FarmerType        string  `json:"farmer_type,omitempty"` // small | medium | large
	LandArea          float64 `json:"land_area,omitempty"`   // hectares
	State             string  `json:"state,omitempty"`
	CropType          string  `json:"crop_type,omitempty"`
	CreditScore       string  `json:"credit_score,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
	Humidity          float64 `json:"humidity,omitempty"`
	MarketDemand      string  `json:"market_demand,omitempty"`
	PestPressure      string  `json:"pest_pressure,omitempty"`
	WaterAvailability string  `json:"water_availability,omitempty"`
}

func (qc *QueryContext) location() string {
	if qc == nil || qc.Location == "" {
		return "Mumbai"
	}
	return qc.Location
}

func (qc *QueryContext) soilType() string {
	if qc == nil || qc.SoilType == "" {
		return "Alluvial"
	}
	return qc.SoilType
}

func (qc *QueryContext) season() string {
	if qc == nil || qc.Season == "" {
		return "Kharif"
	}
	return qc.Season
}

func (qc *QueryContext) budget() string {
	if qc == nil || qc.Budget == "" {
		return "medium"
	}
	return qc.Budget
}

func (qc *QueryContext) farmerType() string {
	if qc == nil || qc.FarmerType == "" {
		return "small"
	}
	return qc.FarmerType
}

func (qc *QueryContext) landArea() float64 {
	if qc == nil || qc.LandArea <= 0 {
		return 2
	}
	return qc.LandArea
}

func (qc *QueryContext) state() string {
	if qc == nil || qc.State == "" {
		return "Maharashtra"
	}
	return qc.State
}

func (qc *QueryContext) cropType() string {
	if qc == nil || qc.CropType == "" {
		return "general"
	}
	return qc.CropType
}

func (qc *QueryContext) creditScore() string {
	if qc == nil || qc.CreditScore == "" {
		return "good"
	}
	return qc.CreditScore
}

func (qc *QueryContext) temperature() float64 {
	if qc == nil || qc.Temperature == 0 {
		return 25
	}
	return qc.Temperature
}

func (qc *QueryContext) marketDemand() string {
	if qc == nil || qc.MarketDemand == "" {
		return "medium"
	}
	return qc.MarketDemand
}

func (qc *QueryContext) pestPressure() string {
	if qc == nil || qc.PestPressure == "" {
		return "low"
	}
	return qc.PestPressure
}

func (qc *QueryContext) waterAvailability() string {
	if qc == nil || qc.WaterAvailability == "" {
		return "medium"
	}
	return qc.WaterAvailability
}

// Result is the uniform advisor response envelope. Success=false implies
// Confidence=0, Data nil and Err populated.
type Result struct {
	Success    bool           `json:"success"`
	Data       map[string]any `json:"data,omitempty"`
	Confidence float64        `json:"confidence"`
	Source     string         `json:"source"`
	Err        string         `json:"error,omitempty"`
}

// Failure builds the uniform failure result for an advisor.
func Failure(source string, err error) Result {
	return Result{
		Success:    false,
		Confidence: 0.0,
		Source:     source,
		Err:        err.Error(),
	}
}

// Advisor is the shared contract of the weather, crop and finance
// responders.
type Advisor interface {
	// Name returns the advisor's source label.
	Name() string

	// Keywords returns the terms indicating this advisor should handle a
	// query.
	Keywords() []string

	// Confidence scores how well the query matches this advisor's domain.
	Confidence(text string) float64

	// ProcessQuery produces the advisor's structured result. Internal
	// failures are captured in the Result, never returned as an error.
	ProcessQuery(ctx context.Context, query string, qc *QueryContext) Result
}

// keywordConfidence is the shared confidence heuristic: the fraction of the
// advisor's keywords present in the text, capped at 1.0. An empty keyword
// list yields the neutral 0.5.
func keywordConfidence(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.5
	}
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches++
		}
	}
	score := float64(matches) / float64(len(keywords))
	if score > 1.0 {
		return 1.0
	}
	return score
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
