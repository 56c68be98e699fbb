package language

// Classification is the bundled result of running the full language pipeline
// over one query.
type Classification struct {
	OriginalText string    `json:"original_text"`
	Language     string    `json:"detected_language"`
	QueryType    QueryType `json:"query_type"`
	Location     string    `json:"location"`
	Crop         string    `json:"crop"`
	Keywords     []string  `json:"keywords"`
	Confidence   float64   `json:"confidence"`
}

// ProcessQuery runs detection, classification and extraction over the text.
// Confidence grows with the number of matched keywords and is clamped to
// [0, 1].
func ProcessQuery(text string) Classification {
	lang := Detect(text)
	keywords := ExtractKeywords(text, lang)

	confidence := float64(len(keywords)) / 10.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Classification{
		OriginalText: text,
		Language:     lang,
		QueryType:    ClassifyType(text, lang),
		Location:     ExtractLocation(text),
		Crop:         ExtractCrop(text),
		Keywords:     keywords,
		Confidence:   confidence,
	}
}
