package language

import "testing"

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "city match", text: "weather in Pune tomorrow", want: "Pune"},
		{name: "state match", text: "schemes for farmers in tamil nadu", want: "Tamil Nadu"},
		{name: "most specific wins", text: "help for daman and diu farmers", want: "Daman and Diu"},
		{name: "no match defaults", text: "when to sow", want: "Mumbai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLocation(tt.text); got != tt.want {
				t.Errorf("ExtractLocation(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractCrop(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "english crop", text: "best wheat varieties", want: "Wheat"},
		{name: "hindi crop", text: "गेहूं की किस्में", want: "Wheat"},
		{name: "no match defaults", text: "what should I do", want: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCrop(tt.text); got != tt.want {
				t.Errorf("ExtractCrop(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestProcessQueryConfidenceClamped(t *testing.T) {
	// A query stuffed with keywords must not exceed confidence 1.0.
	text := "weather rain temperature irrigation water humidity crop seed " +
		"variety plant harvest yield loan credit finance money bank scheme"
	got := ProcessQuery(text)
	if got.Confidence > 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", got.Confidence)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 for >=10 keywords", got.Confidence)
	}
}
