package domain

import "context"

// SoilProvider fetches raw topsoil properties for a coordinate. Fields the
// provider could not resolve are left nil; callers substitute defaults via
// NormalizeSoilProperties.
type SoilProvider interface {
	SoilProperties(ctx context.Context, lat, lon float64) (RawSoilProperties, error)
}

// RainfallProvider fetches a daily precipitation series covering the given
// number of trailing years at a coordinate.
type RainfallProvider interface {
	DailyPrecipitation(ctx context.Context, lat, lon float64, years int) ([]DailyPrecipitation, error)
}
