package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/krishisetu/krishisetu/advisor"
)

// WeatherClient fetches current conditions and short-range forecasts from
// an openweathermap-compatible API.
type WeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// WeatherOption configures the weather client.
type WeatherOption func(*WeatherClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) WeatherOption {
	return func(w *WeatherClient) {
		w.client = client
	}
}

// NewWeatherClient creates a weather client for the given API base URL.
func NewWeatherClient(baseURL, apiKey string, opts ...WeatherOption) *WeatherClient {
	w := &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Rain struct {
			ThreeHour float64 `json:"3h"`
		} `json:"rain"`
	} `json:"list"`
}

// Current returns the current conditions for a location.
func (w *WeatherClient) Current(ctx context.Context, location string) (advisor.Conditions, error) {
	var decoded currentResponse
	if err := w.get(ctx, "/weather", location, &decoded); err != nil {
		return advisor.Conditions{}, err
	}

	cond := advisor.Conditions{
		Temperature: decoded.Main.Temp,
		Humidity:    decoded.Main.Humidity,
		Pressure:    decoded.Main.Pressure,
		WindSpeed:   decoded.Wind.Speed,
	}
	if len(decoded.Weather) > 0 {
		cond.Description = decoded.Weather[0].Description
	}
	return cond, nil
}

// Forecast returns the next 24 hours of three-hour forecast steps.
func (w *WeatherClient) Forecast(ctx context.Context, location string) ([]advisor.ForecastEntry, error) {
	var decoded forecastResponse
	if err := w.get(ctx, "/forecast", location, &decoded); err != nil {
		return nil, err
	}

	limit := len(decoded.List)
	if limit > 8 {
		limit = 8
	}
	entries := make([]advisor.ForecastEntry, 0, limit)
	for _, item := range decoded.List[:limit] {
		entry := advisor.ForecastEntry{
			Time:        item.DtTxt,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			Rainfall:    item.Rain.ThreeHour,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (w *WeatherClient) get(ctx context.Context, path, location string, out any) error {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("external: build weather request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("external: weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("external: weather api returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("external: decode weather response: %w", err)
	}
	return nil
}
