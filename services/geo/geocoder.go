package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"knead/config"
)

// ErrGeocodeUnavailable signals a provider outage, distinct from a bad
// postcode, so clients know to retry later rather than fix their input.
var ErrGeocodeUnavailable = errors.New("postcode validation is temporarily unavailable")

// ErrUnknownPostcode means the provider resolved the request but the
// postcode does not exist.
var ErrUnknownPostcode = errors.New("postcode not recognised")

// Geocoder resolves a postcode to a coordinate.
type Geocoder interface {
	Lookup(ctx context.Context, postcode string) (lat, lng float64, err error)
}

// HTTPGeocoder calls a postcodes.io-compatible lookup API.
type HTTPGeocoder struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPGeocoder() *HTTPGeocoder {
	return &HTTPGeocoder{
		BaseURL: config.AppConfig.GeocoderBaseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type postcodeLookupResponse struct {
	Status int `json:"status"`
	Result struct {
		Postcode  string  `json:"postcode"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"result"`
}

func (g *HTTPGeocoder) Lookup(ctx context.Context, postcode string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/postcodes/%s", strings.TrimRight(g.BaseURL, "/"),
		url.PathEscape(strings.ReplaceAll(postcode, " ", "")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, 0, ErrUnknownPostcode
	case resp.StatusCode >= 500:
		return 0, 0, fmt.Errorf("%w: provider returned %d", ErrGeocodeUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return 0, 0, ErrUnknownPostcode
	}

	var body postcodeLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("%w: malformed provider response", ErrGeocodeUnavailable)
	}
	return body.Result.Latitude, body.Result.Longitude, nil
}
