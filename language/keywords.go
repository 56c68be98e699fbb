package language

import (
	"sort"
	"strings"
)

// languagePatterns holds the per-language domain vocabulary. Greetings and
// question words participate in keyword extraction (they raise the
// classification confidence) but belong to no advisory category.
var languagePatterns = map[string]map[string][]string{
	"hi": {
		"weather_keywords": {"मौसम", "बारिश", "तापमान", "सिंचाई", "पानी", "नमी"},
		"crop_keywords":    {"फसल", "बीज", "किस्म", "रोपण", "फसल काटना", "उपज"},
		"finance_keywords": {"ऋण", "क्रेडिट", "वित्त", "पैसा", "बैंक", "योजना"},
		"greetings":        {"नमस्ते", "स्वागत है", "कैसे हैं"},
		"questions":        {"क्या", "कब", "कहाँ", "कैसे", "क्यों"},
	},
	"ta": {
		"weather_keywords": {"வானிலை", "மழை", "வெப்பநிலை", "நீர்ப்பாசனம்", "தண்ணீர்", "ஈரப்பதம்"},
		"crop_keywords":    {"பயிர்", "விதை", "வகை", "நடவு", "அறுவடை", "மகசூல்"},
		"finance_keywords": {"கடன்", "நிதி", "பணம்", "வங்கி", "திட்டம்"},
		"greetings":        {"வணக்கம்", "வரவேற்கிறோம்", "எப்படி இருக்கிறீர்கள்"},
		"questions":        {"என்ன", "எப்போது", "எங்கே", "எப்படி", "ஏன்"},
	},
	"te": {
		"weather_keywords": {"వాతావరణం", "వర్షం", "ఉష్ణోగ్రత", "నీటి తడుపుదల", "నీరు", "తేమ"},
		"crop_keywords":    {"పంట", "విత్తనం", "రకం", "నాటడం", "పంట కోత"},
		"finance_keywords": {"రుణం", "క్రెడిట్", "ఆర్థిక", "డబ్బు", "బ్యాంక్", "పథకం"},
		"greetings":        {"నమస్కారం", "స్వాగతం", "ఎలా ఉన్నారు"},
		"questions":        {"ఏమి", "ఎప్పుడు", "ఎక్కడ", "ఎలా", "ఎందుకు"},
	},
}

// englishKeywords is appended to every extraction regardless of the detected
// language, so English terms are found inside non-English text.
var englishKeywords = []string{
	"weather", "rain", "temperature", "irrigation", "water", "humidity",
	"crop", "seed", "variety", "plant", "harvest", "yield",
	"loan", "credit", "finance", "money", "bank", "scheme",
}

// ExtractKeywords returns the set of domain keywords found in text by
// case-insensitive substring match, sorted for deterministic output.
func ExtractKeywords(text, lang string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})

	if patterns, ok := languagePatterns[lang]; ok {
		for _, words := range patterns {
			for _, w := range words {
				if strings.Contains(lower, strings.ToLower(w)) {
					seen[w] = struct{}{}
				}
			}
		}
	}

	for _, w := range englishKeywords {
		if strings.Contains(lower, w) {
			seen[w] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
