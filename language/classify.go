package language

import "strings"

// QueryType is the advisory category a query routes to.
type QueryType string

const (
	QueryWeather QueryType = "weather"
	QueryCrop    QueryType = "crop"
	QueryFinance QueryType = "finance"
	QueryGeneral QueryType = "general"
)

// Category keyword groups span every supported language so a Hindi query and
// an English query about irrigation land in the same bucket.
var (
	weatherGroup = buildGroup("weather_keywords",
		"weather", "rain", "temperature", "irrigation", "water", "humidity")
	cropGroup = buildGroup("crop_keywords",
		"crop", "seed", "variety", "plant", "harvest", "yield")
	financeGroup = buildGroup("finance_keywords",
		"loan", "credit", "finance", "money", "bank", "scheme")
)

func buildGroup(category string, english ...string) map[string]struct{} {
	group := make(map[string]struct{}, len(english)*4)
	for _, w := range english {
		group[w] = struct{}{}
	}
	for _, patterns := range languagePatterns {
		for _, w := range patterns[category] {
			group[w] = struct{}{}
		}
	}
	return group
}

// ClassifyType assigns a query to weather, crop, finance or general by
// counting extracted keywords per category group. A category wins only with
// a strict majority over both others; ties and all-zero counts resolve to
// general.
func ClassifyType(text, lang string) QueryType {
	keywords := ExtractKeywords(text, lang)

	var weather, crop, finance int
	for _, kw := range keywords {
		if _, ok := weatherGroup[kw]; ok {
			weather++
		}
		if _, ok := cropGroup[kw]; ok {
			crop++
		}
		if _, ok := financeGroup[kw]; ok {
			finance++
		}
	}

	switch {
	case weather > crop && weather > finance:
		return QueryWeather
	case crop > weather && crop > finance:
		return QueryCrop
	case finance > weather && finance > crop:
		return QueryFinance
	default:
		return QueryGeneral
	}
}

// RelevanceScore reports the fraction of keywords found in text by
// case-insensitive substring match. An empty keyword list scores 0.
func RelevanceScore(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}
