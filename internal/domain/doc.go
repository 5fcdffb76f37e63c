// Package domain models soil composition and the pure calculations behind
// Ksat estimation: texture classification, feature normalization, synthetic
// training data, qualitative annotation, and the rainfall and groundwater
// lookup tables.
//
// # Soil data source
//
// Soil composition comes from the ISRIC SoilGrids v2.0 REST API
// (https://rest.isric.org/soilgrids/v2.0/properties/query), queried per
// property at the 0-5cm depth. SoilGrids encodes sand/silt/clay as integers
// on a 0-1000 scale (divide by 10 for percent) and organic carbon density
// ("ocd") on a scale converted here by a fixed 0.001 factor. Missing or null
// properties fall back per-field to sand=400, silt=350, clay=250, ocd=15.
//
// # Texture classification
//
// ClassifyTexture implements a USDA-soil-triangle-style decision cascade.
// The rules are ordered and mutually non-exclusive: the first match wins, and
// the exact `>` vs `>=` comparisons matter because boundary compositions are
// common in synthetic training data. The training and serving paths share
// this single routine; the encoding table is likewise unified (see
// TextureTableVersion) because a train/serve mismatch degrades predictions
// silently.
//
// # Feature contract
//
// The regressor consumes the five features (Clay, Silt, Sand,
// Texture Encoded, OC) in exactly that order. The order is part of the
// trained model's contract: a reordered vector still predicts, just wrongly.
//
// # Adjacent lookups
//
// Rainfall aggregation summarizes an Open-Meteo daily precipitation series
// into totals, monthly sums, and a category ladder (Arid below 250 mm/year
// through Very Humid at 2000 and above; boundaries are exclusive).
// Groundwater risk maps assessment categories (Safe, Semi-critical,
// Critical, Over-exploited) onto fixed risk scores and recharge guidance.
package domain
