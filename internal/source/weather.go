package source

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/footyhub/uganda-footy-hub/internal/fetch"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// OpenWeatherMap reads the current conditions for a city.
type OpenWeatherMap struct {
	client  *fetch.Client
	baseURL string
	apiKey  string
	units   string
}

func NewOpenWeatherMap(client *fetch.Client, baseURL, apiKey, units string) *OpenWeatherMap {
	if units == "" {
		units = "metric"
	}
	return &OpenWeatherMap{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		units:   units,
	}
}

func (s *OpenWeatherMap) Name() string {
	return "openweathermap"
}

type owmResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Fetch returns the snapshot for city ("Kampala,UG" form).
func (s *OpenWeatherMap) Fetch(ctx context.Context, city string) (model.WeatherSnapshot, error) {
	if s.apiKey == "" {
		return model.WeatherSnapshot{}, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", s.units)
	q.Set("appid", s.apiKey)

	var payload owmResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/weather?"+q.Encode(), &payload); err != nil {
		return model.WeatherSnapshot{}, err
	}

	if payload.Main == nil {
		return model.WeatherSnapshot{}, fmt.Errorf("main: %w", ErrMissingField)
	}
	if len(payload.Weather) == 0 {
		return model.WeatherSnapshot{}, fmt.Errorf("weather[0]: %w", ErrMissingField)
	}

	return model.WeatherSnapshot{
		Temperature: roundHalfUp(payload.Main.Temp),
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		City:        payload.Name,
		Country:     payload.Sys.Country,
	}, nil
}

// roundHalfUp rounds halves toward positive infinity: 22.5 -> 23, -2.5 -> -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
