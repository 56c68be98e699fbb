package external

import "context"

// Data maps a source name ("weather", "soil", "market", "policies") to the
// payload fetched for it. A failed fetch stores {"error": "..."} in its slot
// so one source's outage never hides the others.
type Data map[string]any

// ErrorRatio reports the fraction of sources whose payload carries an error
// marker. It returns 0 for empty data.
func (d Data) ErrorRatio() float64 {
	if len(d) == 0 {
		return 0
	}
	errored := 0
	for _, payload := range d {
		if hasErrorMarker(payload) {
			errored++
		}
	}
	return float64(errored) / float64(len(d))
}

func hasErrorMarker(payload any) bool {
	switch v := payload.(type) {
	case map[string]any:
		_, ok := v["error"]
		return ok
	case []any:
		for _, item := range v {
			if hasErrorMarker(item) {
				return true
			}
		}
	}
	return false
}

// Provider fetches agricultural context data from external sources.
type Provider interface {
	// Weather returns current weather context for a location.
	Weather(ctx context.Context, location string) any

	// Soil returns soil health data for a location.
	Soil(ctx context.Context, location string) any

	// Market returns market data for a crop.
	Market(ctx context.Context, crop string) any

	// Policies returns government policy data for a state.
	Policies(ctx context.Context, state string) any

	// Comprehensive fetches all applicable sources concurrently. Crop and
	// state are optional; empty values skip their source.
	Comprehensive(ctx context.Context, location, crop, state string) Data
}
