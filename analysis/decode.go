package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	kerrors "github.com/krishisetu/krishisetu/errors"
)

// DecodeAnalysis parses LLM output into an AgriculturalAnalysis. It strips
// code fences, then falls back to the first balanced {...} span when the
// whole text does not parse. Output with no decodable JSON object degrades
// to a minimal analysis carrying the raw text as its summary. JSON that is
// present but does not conform to the schema is a validation error.
func DecodeAnalysis(raw string) (*AgriculturalAnalysis, error) {
	clean := sanitizeJSON(raw)

	if out, err := decodeStrict(clean); err == nil {
		return out, nil
	} else if isSchemaError(clean) {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrSchemaValidation, err)
	}

	if span, ok := balancedSpan(clean); ok {
		out, err := decodeStrict(span)
		if err == nil {
			return out, nil
		}
		// A span that is valid JSON but fails to decode violates the
		// schema; anything else is prose that happens to contain braces.
		if isSchemaError(span) {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrSchemaValidation, err)
		}
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		summary = "No analysis produced"
	}
	return &AgriculturalAnalysis{Summary: summary}, nil
}

func decodeStrict(text string) (*AgriculturalAnalysis, error) {
	var out AgriculturalAnalysis
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// isSchemaError reports whether the text is itself a JSON object, meaning
// a decode failure is a schema problem rather than surrounding prose.
func isSchemaError(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	var probe map[string]json.RawMessage
	return json.Unmarshal([]byte(trimmed), &probe) == nil
}

// sanitizeJSON strips a surrounding markdown code fence.
func sanitizeJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = trimmed[3:]
		trimmed = strings.TrimPrefix(trimmed, "json")
		trimmed = strings.TrimPrefix(trimmed, "JSON")
		if idx := strings.Index(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return strings.TrimSpace(trimmed)
}

// balancedSpan extracts the first balanced top-level {...} span, skipping
// braces inside string literals.
func balancedSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
