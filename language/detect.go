// Package language implements the multilingual query understanding layer:
// script-based language detection, domain keyword extraction, query type
// classification and location/crop extraction.
package language

// Script block ranges checked in fixed priority order. A single rune inside
// a block routes the whole text to that language tag.
var scriptRanges = []struct {
	tag  string
	lo   rune
	hi   rune
}{
	{tag: "hi", lo: 0x0900, hi: 0x097F}, // Devanagari
	{tag: "ta", lo: 0x0B80, hi: 0x0BFF}, // Tamil
	{tag: "te", lo: 0x0C00, hi: 0x0C7F}, // Telugu
}

// DefaultLanguage is returned when no known script is present.
const DefaultLanguage = "en"

// Detect assigns a language tag to text by Unicode script presence. It is a
// presence test, not a statistical classifier, and always returns a value.
func Detect(text string) string {
	for _, sr := range scriptRanges {
		for _, r := range text {
			if r >= sr.lo && r <= sr.hi {
				return sr.tag
			}
		}
	}
	return DefaultLanguage
}

// Supported lists the language tags the service accepts.
func Supported() []string {
	return []string{"en", "hi", "ta", "te", "bn", "mr", "gu", "kn", "ml", "pa"}
}
