package advisor

import (
	"context"
	"fmt"
)

// Eligibility is the computed loan eligibility for a farmer profile.
type Eligibility struct {
	EligibleAmount  float64  `json:"eligible_amount"`
	Display         string   `json:"display"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// InsuranceOption describes a crop insurance product sized to the farm.
type InsuranceOption struct {
	Name        string   `json:"name"`
	Coverage    string   `json:"coverage"`
	PremiumRate string   `json:"premium_rate"`
	SumInsured  string   `json:"sum_insured"`
	Features    []string `json:"features"`
}

// FinanceAdvisor answers loan, scheme, insurance and market queries.
type FinanceAdvisor struct{}

// NewFinanceAdvisor creates the finance advisor.
func NewFinanceAdvisor() *FinanceAdvisor {
	return &FinanceAdvisor{}
}

func (a *FinanceAdvisor) Name() string { return "Finance Advisor" }

func (a *FinanceAdvisor) Keywords() []string {
	return []string{
		"loan", "credit", "finance", "money", "bank", "scheme", "subsidy",
		"insurance", "market", "price", "profit", "investment", "budget",
		"ऋण", "क्रेडिट", "वित्त", "पैसा", "बैंक", "योजना", "सब्सिडी",
		"बीमा", "बाजार", "कीमत", "लाभ", "निवेश", "बजट",
	}
}

func (a *FinanceAdvisor) Confidence(text string) float64 {
	return keywordConfidence(text, a.Keywords())
}

// ProcessQuery assembles loan, scheme, market, insurance and eligibility
// data for the farmer profile in the context.
func (a *FinanceAdvisor) ProcessQuery(ctx context.Context, query string, qc *QueryContext) Result {
	farmerType := qc.farmerType()
	landArea := qc.landArea()

	return Result{
		Success: true,
		Data: map[string]any{
			"loan_options":       a.LoanOptions(farmerType, landArea),
			"government_schemes": a.Schemes(qc.state(), farmerType),
			"market_analysis":    a.MarketTrend(qc.cropType()),
			"insurance_options":  a.InsuranceOptions(qc.cropType(), landArea),
			"loan_eligibility":   a.Eligibility(farmerType, landArea, qc.creditScore()),
			"timestamp":          nowISO(),
		},
		Confidence: a.Confidence(query),
		Source:     a.Name(),
	}
}

// LoanOptions filters the loan catalog by farmer type and land area.
func (a *FinanceAdvisor) LoanOptions(farmerType string, landArea float64) []LoanOption {
	keep := func(names ...string) []LoanOption {
		allowed := make(map[string]struct{}, len(names))
		for _, n := range names {
			allowed[n] = struct{}{}
		}
		var out []LoanOption
		for _, loan := range loanCatalog {
			if _, ok := allowed[loan.Name]; ok {
				out = append(out, loan)
			}
		}
		return out
	}

	switch {
	case farmerType == "small" && landArea < 2:
		return keep("Kisan Credit Card (KCC)", "PM-KISAN", "Microfinance Loan")
	case farmerType == "medium" && landArea >= 2 && landArea <= 10:
		return keep("Kisan Credit Card (KCC)", "Agricultural Term Loan")
	default:
		return append([]LoanOption(nil), loanCatalog...)
	}
}

// Schemes returns the national schemes plus any state-specific additions.
func (a *FinanceAdvisor) Schemes(state, farmerType string) []Scheme {
	schemes := append([]Scheme(nil), schemeCatalog...)
	schemes = append(schemes, stateSchemes[state]...)
	return schemes
}

// MarketTrend returns the market analysis for a crop; unknown crops yield a
// data-not-available placeholder.
func (a *FinanceAdvisor) MarketTrend(cropType string) MarketTrend {
	if trend, ok := trendTable[cropType]; ok {
		return trend
	}
	return MarketTrend{
		Trend:    "Unknown",
		Forecast: "Data not available",
		Factors:  []string{},
	}
}

// InsuranceOptions sizes the insurance catalog to the farm's land area.
func (a *FinanceAdvisor) InsuranceOptions(cropType string, landArea float64) []InsuranceOption {
	return []InsuranceOption{
		{
			Name:        "PM Fasal Bima Yojana",
			Coverage:    "Yield loss, weather risk, post-harvest losses",
			PremiumRate: "2% for Kharif, 1.5% for Rabi",
			SumInsured:  fmt.Sprintf("₹%.0f", landArea*50000),
			Features:    []string{"Government subsidy", "Quick settlement", "Comprehensive coverage"},
		},
		{
			Name:        "Weather-Based Crop Insurance",
			Coverage:    "Weather-related losses",
			PremiumRate: "3-5%",
			SumInsured:  fmt.Sprintf("₹%.0f", landArea*40000),
			Features:    []string{"Weather station data", "Automatic settlement", "No crop cutting experiments"},
		},
		{
			Name:        "Crop Insurance for Horticulture",
			Coverage:    "Fruits and vegetables",
			PremiumRate: "5-8%",
			SumInsured:  fmt.Sprintf("₹%.0f", landArea*60000),
			Features:    []string{"Specialized coverage", "Market price protection", "Quality loss coverage"},
		},
	}
}

// Eligibility computes the loan amount a farmer qualifies for:
// land area × ₹50,000 per hectare × farmer-type multiplier × credit
// multiplier.
func (a *FinanceAdvisor) Eligibility(farmerType string, landArea float64, creditScore string) Eligibility {
	base := landArea * 50000

	multiplier := 1.2 // anything beyond small and medium counts as large
	switch farmerType {
	case "small":
		multiplier = 0.8
	case "medium":
		multiplier = 1.0
	}

	creditMultiplier := 0.7
	switch creditScore {
	case "excellent":
		creditMultiplier = 1.2
	case "good":
		creditMultiplier = 1.0
	}

	amount := base * multiplier * creditMultiplier

	return Eligibility{
		EligibleAmount: amount,
		Display:        fmt.Sprintf("₹%.0f", amount),
		Factors: []string{
			fmt.Sprintf("Land area: %.1f hectares", landArea),
			fmt.Sprintf("Farmer type: %s", farmerType),
			fmt.Sprintf("Credit score: %s", creditScore),
		},
		Recommendations: []string{
			"Maintain good credit history",
			"Keep land documents updated",
			"Consider crop insurance for better terms",
		},
	}
}
