// Package mapbox implements domain.Geocoder against the Mapbox Geocoding API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

const (
	defaultBaseURL  = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	defaultTimeout  = 5 * time.Second
	defaultLanguage = "en"

	// Producer locations are regions rather than street addresses.
	forwardTypes = "region,district,place,locality"
)

// Client implements domain.Geocoder using the Mapbox Geocoding API.
type Client struct {
	token      string
	baseURL    string
	language   string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint, such as a test server.
func WithBaseURL(u string) Option {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLanguage sets the language of returned place names.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = strings.TrimSpace(lang)
	}
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		language:   defaultLanguage,
		httpClient: &http.Client{Timeout: defaultTimeout},
		metrics:    metrics,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-200 answer from Mapbox.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mapbox API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("mapbox API error: status %d: %s", e.StatusCode, e.Message)
}

// ForwardGeocode resolves a growing region and its country to coordinates.
func (c *Client) ForwardGeocode(ctx context.Context, region, country string) (domain.GeocodingResult, error) {
	query := region
	if country != "" {
		query = region + ", " + country
	}
	params := c.params()
	params.Set("types", forwardTypes)
	return c.doRequest(ctx, c.endpoint(query, params), "forward")
}

// ReverseGeocode converts coordinates to place details.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	return c.doRequest(ctx, c.endpoint(coord, c.params()), "reverse")
}

func (c *Client) params() url.Values {
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	return params
}

func (c *Client) endpoint(query string, params url.Values) string {
	return fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())
}

func (c *Client) doRequest(ctx context.Context, fullURL, method string) (domain.GeocodingResult, error) {
	result, err := c.fetch(ctx, fullURL, method)
	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
		c.logger.Debug("mapbox request failed", "method", method, "error", err)
	case result.FormattedAddress == "":
		outcome = "empty"
	}
	c.metrics.GeocodeRequests.WithLabelValues(method, outcome).Inc()
	return result, err
}

func (c *Client) fetch(ctx context.Context, fullURL, method string) (domain.GeocodingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("%s geocode request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GeocodingResult{}, readAPIError(resp)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Features) == 0 {
		return domain.GeocodingResult{}, nil
	}
	return body.Features[0].result(), nil
}

func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var msg struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &msg) == nil && msg.Message != "" {
		apiErr.Message = msg.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string         `json:"id"`
	PlaceType []string       `json:"place_type"`
	Center    []float64      `json:"center"` // [lon, lat]
	PlaceName string         `json:"place_name"`
	Text      string         `json:"text"`
	Relevance float64        `json:"relevance"`
	Context   []contextEntry `json:"context"`
}

// contextEntry is one enclosing area of a feature, e.g. "country.8738".
type contextEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (f feature) result() domain.GeocodingResult {
	r := domain.GeocodingResult{
		FormattedAddress: f.PlaceName,
		PlaceName:        f.Text,
		Country:          f.country(),
		Confidence:       f.Relevance,
	}
	if len(f.Center) == 2 {
		r.Lon = f.Center[0]
		r.Lat = f.Center[1]
	}
	return r
}

func (f feature) country() string {
	if slices.Contains(f.PlaceType, "country") {
		return f.Text
	}
	for _, e := range f.Context {
		if strings.HasPrefix(e.ID, "country.") {
			return e.Text
		}
	}
	return ""
}
