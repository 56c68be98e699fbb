package language

import "testing"

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want QueryType
	}{
		{
			name: "weather only keywords",
			text: "what is the weather and will it rain with high humidity",
			want: QueryWeather,
		},
		{
			name: "crop only keywords",
			text: "which seed variety should I plant for a good harvest",
			want: QueryCrop,
		},
		{
			name: "finance only keywords",
			text: "which bank gives a loan under the government scheme",
			want: QueryFinance,
		},
		{
			name: "two-way tie falls to general",
			text: "weather and crop",
			want: QueryGeneral,
		},
		{
			name: "no keywords",
			text: "hello there",
			want: QueryGeneral,
		},
		{
			name: "hindi weather query",
			text: "मेरी फसल को कब सिंचाई और पानी देना चाहिए, मौसम कैसा है",
			want: QueryWeather,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyType(tt.text, Detect(tt.text)); got != tt.want {
				t.Errorf("ClassifyType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRelevanceScore(t *testing.T) {
	if got := RelevanceScore("anything at all", nil); got != 0.0 {
		t.Errorf("empty keyword list: got %v, want 0.0", got)
	}

	keywords := []string{"loan", "credit", "bank", "subsidy"}
	got := RelevanceScore("I need a LOAN from the bank", keywords)
	if got != 0.5 {
		t.Errorf("RelevanceScore = %v, want 0.5 (2 of 4 matched)", got)
	}
}

func TestExtractKeywordsCrossLanguage(t *testing.T) {
	// English terms must be detected even inside Hindi text.
	keywords := ExtractKeywords("मौसम kaisa hai, weather update chahiye", "hi")
	var foundHindi, foundEnglish bool
	for _, kw := range keywords {
		if kw == "मौसम" {
			foundHindi = true
		}
		if kw == "weather" {
			foundEnglish = true
		}
	}
	if !foundHindi || !foundEnglish {
		t.Fatalf("expected both Hindi and English keywords, got %v", keywords)
	}
}
