package soilgrids

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func meanResponse(name string, mean float64) response {
	var resp response
	l := layer{Name: name, Depths: []depth{{Label: "0-5cm"}}}
	l.Depths[0].Values.Mean = &mean
	resp.Properties.Layers = []layer{l}
	return resp
}

func TestClient_SoilProperties_Success(t *testing.T) {
	values := map[string]float64{"sand": 412, "silt": 338, "clay": 250, "ocd": 18}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "0-5cm", q.Get("depth"))
		assert.Equal(t, "mean", q.Get("value"))
		assert.Equal(t, "30.267200", q.Get("lat"))

		prop := q.Get("property")
		v, ok := values[prop]
		require.True(t, ok, "unexpected property %q", prop)

		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(meanResponse(prop, v)))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.SoilProperties(context.Background(), 30.2672, -97.7431)
	require.NoError(t, err)

	require.NotNil(t, raw.Sand)
	require.NotNil(t, raw.Silt)
	require.NotNil(t, raw.Clay)
	require.NotNil(t, raw.OCD)
	assert.Equal(t, 412.0, *raw.Sand)
	assert.Equal(t, 338.0, *raw.Silt)
	assert.Equal(t, 250.0, *raw.Clay)
	assert.Equal(t, 18.0, *raw.OCD)
	assert.False(t, raw.Degraded())
}

func TestClient_SoilProperties_PartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prop := r.URL.Query().Get("property")
		if prop == "ocd" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(meanResponse(prop, 300)))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.SoilProperties(context.Background(), 12.97, 77.59)
	require.NoError(t, err, "a single failed property should not fail the lookup")

	assert.NotNil(t, raw.Sand)
	assert.Nil(t, raw.OCD)
	assert.True(t, raw.Degraded())
}

func TestClient_SoilProperties_NullMean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := meanResponse(r.URL.Query().Get("property"), 0)
		resp.Properties.Layers[0].Depths[0].Values.Mean = nil
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.SoilProperties(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.True(t, raw.Degraded())
	assert.Nil(t, raw.Sand)
}

func TestClient_SoilProperties_AllRequestsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.SoilProperties(context.Background(), 51.5, -0.12)
	require.NoError(t, err)
	assert.True(t, raw.Degraded())
	assert.Nil(t, raw.Sand)
	assert.Nil(t, raw.Silt)
	assert.Nil(t, raw.Clay)
	assert.Nil(t, raw.OCD)
}

func TestClient_SoilProperties_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := testClient(srv.URL)
	_, err := c.SoilProperties(ctx, 30.0, -97.0)
	require.Error(t, err)
}
