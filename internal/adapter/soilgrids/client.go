// Package soilgrids fetches topsoil properties from the ISRIC SoilGrids REST
// API. Each property is queried separately; a failed property degrades to a
// nil field rather than failing the whole lookup.
package soilgrids

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
)

// Properties queried per lookup, topsoil layer only.
var queryProperties = []string{"sand", "silt", "clay", "ocd"}

const queryDepth = "0-5cm"

// Client implements domain.SoilProvider using the SoilGrids properties API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a SoilGrids client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://rest.isric.org/soilgrids/v2.0/properties/query",
		logger:  logger,
	}
}

// SoilProperties fetches the mean topsoil values for the coordinate. Values
// arrive in SoilGrids raw units (g/kg scaled by 10 for fractions, hg/m3 for
// ocd). Properties that cannot be fetched stay nil.
func (c *Client) SoilProperties(ctx context.Context, lat, lon float64) (domain.RawSoilProperties, error) {
	var raw domain.RawSoilProperties
	fields := map[string]**float64{
		"sand": &raw.Sand,
		"silt": &raw.Silt,
		"clay": &raw.Clay,
		"ocd":  &raw.OCD,
	}

	for _, prop := range queryProperties {
		v, err := c.fetchProperty(ctx, lat, lon, prop)
		if err != nil {
			if ctx.Err() != nil {
				return raw, ctx.Err()
			}
			c.logger.Warn("soilgrids property unavailable", "property", prop, "error", err)
			continue
		}
		*fields[prop] = v
	}
	return raw, nil
}

func (c *Client) fetchProperty(ctx context.Context, lat, lon float64, property string) (*float64, error) {
	params := url.Values{
		"lat":      {fmt.Sprintf("%.6f", lat)},
		"lon":      {fmt.Sprintf("%.6f", lon)},
		"property": {property},
		"depth":    {queryDepth},
		"value":    {"mean"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soilgrids request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("soilgrids API error: status %d: %s", resp.StatusCode, body)
	}

	var sg response
	if err := json.NewDecoder(resp.Body).Decode(&sg); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(sg.Properties.Layers) == 0 || len(sg.Properties.Layers[0].Depths) == 0 {
		return nil, fmt.Errorf("no layers in response for %s", property)
	}
	mean := sg.Properties.Layers[0].Depths[0].Values.Mean
	if mean == nil {
		return nil, fmt.Errorf("no mean value for %s", property)
	}
	return mean, nil
}

// SoilGrids API response types.

type response struct {
	Properties struct {
		Layers []layer `json:"layers"`
	} `json:"properties"`
}

type layer struct {
	Name   string  `json:"name"`
	Depths []depth `json:"depths"`
}

type depth struct {
	Label  string `json:"label"`
	Values struct {
		Mean *float64 `json:"mean"`
	} `json:"values"`
}
