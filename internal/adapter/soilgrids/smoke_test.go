//go:build soilgrids

package soilgrids

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real SoilGrids API.
// Run with: go test -tags=soilgrids ./internal/adapter/soilgrids/ -v -count=1

func smokeClient() *Client {
	return NewClient(30*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_SoilProperties(t *testing.T) {
	c := smokeClient()

	// Agricultural land near Nagpur, India.
	raw, err := c.SoilProperties(context.Background(), 21.1458, 79.0882)
	require.NoError(t, err)
	require.False(t, raw.Degraded())

	assert.Greater(t, *raw.Sand, 0.0)
	assert.Greater(t, *raw.Clay, 0.0)
}

func TestSmoke_OpenOcean(t *testing.T) {
	c := smokeClient()

	// Mid-Atlantic, no soil coverage. The lookup should degrade, not error.
	raw, err := c.SoilProperties(context.Background(), 0.0, -30.0)
	require.NoError(t, err)
	assert.True(t, raw.Degraded())
}
