package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	iconURLFormat     = "https://openweathermap.org/img/wn/%s@2x.png"
	maxWeatherBody    = 1 << 20
)

var (
	// ErrUpstreamStatus is returned when the provider answers with a non-200 status.
	ErrUpstreamStatus = errors.New("weather provider returned an error status")
	// ErrMalformedWeather is returned when a 200 body cannot be shaped into a report.
	ErrMalformedWeather = errors.New("malformed weather response")
)

// WeatherReport is the display shape of the current weather in a city.
type WeatherReport struct {
	City               string
	Country            string
	Temp               float64
	WeatherMain        string
	WeatherDescription string
	Pressure           float64
	Humidity           float64
	Wind               float64
	IconURL            string
}

// owmResponse mirrors the subset of the OpenWeatherMap payload we read.
type owmResponse struct {
	Name string `json:"name"`
	Sys  *struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type WeatherClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewWeatherClient(apiKey string) *WeatherClient {
	return &WeatherClient{
		baseURL: DefaultWeatherURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at another provider endpoint.
func (c *WeatherClient) WithBaseURL(u string) *WeatherClient {
	c.baseURL = u
	return c
}

// Current fetches the current metric weather for city.
func (c *WeatherClient) Current(ctx context.Context, city string) (*WeatherReport, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxWeatherBody))
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var payload owmResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxWeatherBody)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWeather, err)
	}
	return payload.report()
}

func (p *owmResponse) report() (*WeatherReport, error) {
	switch {
	case len(p.Weather) == 0:
		return nil, fmt.Errorf("%w: no weather conditions", ErrMalformedWeather)
	case p.Main == nil:
		return nil, fmt.Errorf("%w: missing main block", ErrMalformedWeather)
	case p.Sys == nil:
		return nil, fmt.Errorf("%w: missing sys block", ErrMalformedWeather)
	case p.Wind == nil:
		return nil, fmt.Errorf("%w: missing wind block", ErrMalformedWeather)
	}

	w := p.Weather[0]
	return &WeatherReport{
		City:               p.Name,
		Country:            p.Sys.Country,
		Temp:               p.Main.Temp,
		WeatherMain:        w.Main,
		WeatherDescription: w.Description,
		Pressure:           p.Main.Pressure,
		Humidity:           p.Main.Humidity,
		Wind:               p.Wind.Speed,
		IconURL:            fmt.Sprintf(iconURLFormat, w.Icon),
	}, nil
}
