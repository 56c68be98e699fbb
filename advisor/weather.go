package advisor

import (
	"context"
	"fmt"
)

// Conditions is a current-weather snapshot.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Pressure    float64 `json:"pressure"`
}

// ForecastEntry is one step of a short-range forecast.
type ForecastEntry struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	Rainfall    float64 `json:"rainfall"`
}

// WeatherService is the external weather collaborator. Implementations
// return an error only for transport-level failures; the advisor captures
// it as an error payload rather than propagating it.
type WeatherService interface {
	Current(ctx context.Context, location string) (Conditions, error)
	Forecast(ctx context.Context, location string) ([]ForecastEntry, error)
}

// IrrigationAdvice is the result of the irrigation heuristic.
type IrrigationAdvice struct {
	Recommendation string `json:"recommendation"`
	Priority       string `json:"priority"`
	Reasoning      string `json:"reasoning"`
	NextIrrigation string `json:"next_irrigation"`
}

// WeatherAdvisor answers weather, irrigation and soil moisture queries.
type WeatherAdvisor struct {
	svc WeatherService
}

// NewWeatherAdvisor creates the weather advisor backed by the given
// external weather service.
func NewWeatherAdvisor(svc WeatherService) *WeatherAdvisor {
	return &WeatherAdvisor{svc: svc}
}

func (a *WeatherAdvisor) Name() string { return "Weather Advisor" }

func (a *WeatherAdvisor) Keywords() []string {
	return []string{
		"weather", "temperature", "rain", "irrigation", "humidity", "forecast",
		"drought", "flood", "monsoon", "season", "climate", "moisture",
		"पानी", "मौसम", "सिंचाई", "बारिश", "तापमान", "नमी",
	}
}

func (a *WeatherAdvisor) Confidence(text string) float64 {
	return keywordConfidence(text, a.Keywords())
}

// ProcessQuery gathers current conditions, a forecast and irrigation advice
// for the query's location.
func (a *WeatherAdvisor) ProcessQuery(ctx context.Context, query string, qc *QueryContext) Result {
	if a.svc == nil {
		return Failure(a.Name(), fmt.Errorf("weather service not configured"))
	}

	location := qc.location()

	var current map[string]any
	cond, err := a.svc.Current(ctx, location)
	if err != nil {
		current = map[string]any{"error": fmt.Sprintf("failed to fetch weather data: %v", err)}
	} else {
		current = conditionsMap(cond)
	}

	var forecast map[string]any
	entries, err := a.svc.Forecast(ctx, location)
	if err != nil {
		forecast = map[string]any{"error": fmt.Sprintf("failed to fetch forecast: %v", err)}
	} else {
		forecast = map[string]any{"forecast": entries}
	}

	advice := AnalyzeIrrigation(cond)

	return Result{
		Success: true,
		Data: map[string]any{
			"current_weather":           current,
			"forecast":                  forecast,
			"irrigation_recommendation": advice,
			"soil_moisture":             SoilMoistureSnapshot(),
			"timestamp":                 nowISO(),
		},
		Confidence: a.Confidence(query),
		Source:     a.Name(),
	}
}

func conditionsMap(c Conditions) map[string]any {
	return map[string]any{
		"temperature": c.Temperature,
		"humidity":    c.Humidity,
		"description": c.Description,
		"wind_speed":  c.WindSpeed,
		"pressure":    c.Pressure,
	}
}

// AnalyzeIrrigation maps current conditions to an irrigation priority band.
func AnalyzeIrrigation(c Conditions) IrrigationAdvice {
	temp := c.Temperature
	humidity := c.Humidity
	if temp == 0 {
		temp = 25
	}
	if humidity == 0 {
		humidity = 60
	}

	var recommendation, priority string
	switch {
	case temp > 30 && humidity < 50:
		recommendation = "High irrigation needed - high temperature and low humidity"
		priority = "High"
	case temp > 25 && humidity < 60:
		recommendation = "Moderate irrigation recommended"
		priority = "Medium"
	default:
		recommendation = "Low irrigation needed - favorable conditions"
		priority = "Low"
	}

	return IrrigationAdvice{
		Recommendation: recommendation,
		Priority:       priority,
		Reasoning:      fmt.Sprintf("Temperature: %.1f°C, Humidity: %.0f%%", temp, humidity),
		NextIrrigation: nextIrrigation(temp),
	}
}

func nextIrrigation(temp float64) string {
	switch {
	case temp > 30:
		return "Within 24 hours"
	case temp > 25:
		return "Within 48 hours"
	default:
		return "Within 72 hours"
	}
}

// SoilMoistureSnapshot is a fixed placeholder until sensor integration
// exists.
func SoilMoistureSnapshot() map[string]any {
	return map[string]any{
		"soil_moisture":  "Moderate",
		"recommendation": "Monitor soil moisture levels",
		"next_check":     "24 hours",
	}
}
