// Package weather is the OpenWeatherMap collaborator. It answers exactly
// one question for the greeting: is it hot in Pehuajó right now. Every
// failure mode (transport, status, decode, missing fields) degrades to
// "not hot" with no temperature recorded; the core never sees an error.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/RGJohana/Bot-Frozen/internal/logging"
)

// DefaultBaseURL is the OpenWeatherMap current-weather endpoint.
const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"

// defaultTimeout bounds the single synchronous call made before the session
// loop starts.
const defaultTimeout = 5 * time.Second

// Options configures a Client. Zero values fall back to the Pehuajó
// defaults except APIKey, which has no default.
type Options struct {
	APIKey    string
	Lat       string
	Lon       string
	HotAbove  float64 // degrees Celsius; temperature must exceed this
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client queries the current temperature. Construct one per session; the
// last fetched temperature is observable through Temperature after IsHotNow
// returns.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	lat, lon   string
	hotAbove   float64

	temperature float64
	fetched     bool

	log *logging.Logger
}

// NewClient builds a Client from options.
func NewClient(opts Options) *Client {
	if opts.Lat == "" {
		opts.Lat = "-35.836948753554054"
	}
	if opts.Lon == "" {
		opts.Lon = "-61.870523905384076"
	}
	if opts.HotAbove == 0 {
		opts.HotAbove = 28
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		lat:        opts.Lat,
		lon:        opts.Lon,
		hotAbove:   opts.HotAbove,
		log:        logging.Get(logging.CategoryWeather),
	}
}

// currentWeather is the slice of the OpenWeatherMap response we care about.
// Pointers distinguish absent fields from zero temperatures.
type currentWeather struct {
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// IsHotNow fetches the current temperature and reports whether it exceeds
// the hot threshold. Any failure returns false.
func (c *Client) IsHotNow(ctx context.Context) bool {
	temp, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("weather lookup failed: %v", err)
		return false
	}

	c.temperature = temp
	c.fetched = true
	c.log.Debug("temperature in Pehuajó: %.1f°C", temp)
	return temp > c.hotAbove
}

// Temperature returns the last fetched value. The second result is false
// when no fetch has succeeded.
func (c *Client) Temperature() (float64, bool) {
	return c.temperature, c.fetched
}

func (c *Client) fetch(ctx context.Context) (float64, error) {
	q := url.Values{}
	q.Set("lat", c.lat)
	q.Set("lon", c.lon)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weather API returned %s", resp.Status)
	}

	var data currentWeather
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("decoding weather response: %w", err)
	}
	if data.Main == nil || data.Main.Temp == nil {
		return 0, fmt.Errorf("weather response missing temperature")
	}
	return *data.Main.Temp, nil
}
