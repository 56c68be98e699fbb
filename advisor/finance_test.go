package advisor

import (
	"context"
	"testing"
)

func TestEligibility(t *testing.T) {
	a := NewFinanceAdvisor()

	tests := []struct {
		name        string
		farmerType  string
		landArea    float64
		creditScore string
		want        float64
	}{
		{"medium farmer good credit", "medium", 4, "good", 200000},
		{"small farmer good credit", "small", 2, "good", 80000},
		{"large farmer excellent credit", "large", 10, "excellent", 720000},
		{"poor credit dampens amount", "medium", 4, "poor", 140000},
		{"unknown credit treated as poor", "medium", 4, "unrated", 140000},
		{"unknown farmer type treated as large", "commercial", 5, "good", 300000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Eligibility(tt.farmerType, tt.landArea, tt.creditScore)
			if got.EligibleAmount != tt.want {
				t.Errorf("eligible amount = %v, want %v", got.EligibleAmount, tt.want)
			}
		})
	}
}

func TestLoanOptionsFiltering(t *testing.T) {
	a := NewFinanceAdvisor()

	small := a.LoanOptions("small", 1.5)
	if len(small) != 3 {
		t.Fatalf("small farmer <2ha should see 3 products, got %d", len(small))
	}
	for _, loan := range small {
		if loan.Name == "Agricultural Term Loan" {
			t.Errorf("small farmer should not be offered %q", loan.Name)
		}
	}

	medium := a.LoanOptions("medium", 5)
	if len(medium) != 2 {
		t.Fatalf("medium farmer should see 2 products, got %d", len(medium))
	}

	large := a.LoanOptions("large", 20)
	if len(large) != len(loanCatalog) {
		t.Errorf("large farmer should see the full catalog, got %d", len(large))
	}
}

func TestSchemesIncludeStateAdditions(t *testing.T) {
	a := NewFinanceAdvisor()

	national := a.Schemes("Kerala", "small")
	withState := a.Schemes("Maharashtra", "small")
	if len(withState) != len(national)+len(stateSchemes["Maharashtra"]) {
		t.Errorf("Maharashtra should add %d schemes on top of %d national ones, got %d",
			len(stateSchemes["Maharashtra"]), len(national), len(withState))
	}
}

func TestMarketTrendUnknownCrop(t *testing.T) {
	a := NewFinanceAdvisor()
	got := a.MarketTrend("dragonfruit")
	if got.Trend != "Unknown" {
		t.Errorf("unknown crop trend = %q, want Unknown", got.Trend)
	}
}

func TestFinanceProcessQuery(t *testing.T) {
	a := NewFinanceAdvisor()
	res := a.ProcessQuery(context.Background(), "I need a loan for my farm", &QueryContext{
		FarmerType: "medium",
		LandArea:   4,
	})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Err)
	}
	elig, ok := res.Data["loan_eligibility"].(Eligibility)
	if !ok {
		t.Fatalf("loan_eligibility missing or wrong type: %T", res.Data["loan_eligibility"])
	}
	if elig.EligibleAmount != 200000 {
		t.Errorf("eligible amount = %v, want 200000", elig.EligibleAmount)
	}
	if res.Source != "Finance Advisor" {
		t.Errorf("source = %q", res.Source)
	}
}
