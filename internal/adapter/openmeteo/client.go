// Package openmeteo fetches historical daily precipitation from the
// Open-Meteo archive API.
package openmeteo

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

const dateLayout = "2006-01-02"

// Client implements domain.RainfallProvider using the Open-Meteo archive API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo archive client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		logger:  logger,
	}
}

// DailyPrecipitation fetches the daily precipitation series for the trailing
// number of years at the coordinate. Days with no reading are skipped.
func (c *Client) DailyPrecipitation(ctx context.Context, lat, lon float64, years int) ([]domain.DailyPrecipitation, error) {
	end := domain.Now().UTC()
	start := end.AddDate(0, 0, -years*365)

	params := url.Values{
		"latitude":   {fmt.Sprintf("%.6f", lat)},
		"longitude":  {fmt.Sprintf("%.6f", lon)},
		"start_date": {start.Format(dateLayout)},
		"end_date":   {end.Format(dateLayout)},
		"daily":      {"precipitation_sum"},
		"timezone":   {"UTC"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var om response
	if err := json.NewDecoder(resp.Body).Decode(&om); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(om.Daily.Time) != len(om.Daily.PrecipitationSum) {
		return nil, fmt.Errorf("open-meteo response: %d dates but %d readings",
			len(om.Daily.Time), len(om.Daily.PrecipitationSum))
	}

	series := make([]domain.DailyPrecipitation, 0, len(om.Daily.Time))
	for i, ds := range om.Daily.Time {
		if om.Daily.PrecipitationSum[i] == nil {
			continue
		}
		day, err := time.Parse(dateLayout, ds)
		if err != nil {
			c.logger.Warn("open-meteo returned unparseable date", "date", ds)
			continue
		}
		series = append(series, domain.DailyPrecipitation{
			Date: day,
			Sum:  *om.Daily.PrecipitationSum[i],
		})
	}
	return series, nil
}

// Open-Meteo API response types.

type response struct {
	Daily struct {
		Time             []string   `json:"time"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}
