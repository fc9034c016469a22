package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vlysenko/weather-cli/internal/weather"
)

// WeatherAPIProvider is the live client for WeatherAPI.com current conditions.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/current.json",
		client:  client,
		circuit: cb,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Fetch issues one GET to the current-conditions endpoint. A 200 response can
// still carry a logical failure in an "error" object (unknown city, rejected
// key), which surfaces as a ProviderError.
func (p *WeatherAPIProvider) Fetch(ctx context.Context, city string) (weather.Document, error) {
	if p.apiKey == "" {
		return nil, weather.ErrNoAPIKey
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", city)

	body, err := doRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	if err != nil {
		return nil, err
	}

	var probe struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrParse, err)
	}
	if probe.Error != nil {
		return nil, &weather.ProviderError{Message: probe.Error.Message}
	}

	return weather.Document(body), nil
}
