package domain

import "time"

// PredictionEvent is the record published for each served prediction, used
// by downstream consumers to build recharge planning datasets.
type PredictionEvent struct {
	ID          string    `json:"id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	KsatMmHr    float64   `json:"ksat_mm_hr"`
	Texture     string    `json:"soil_texture"`
	Degraded    bool      `json:"degraded_soil_data"`
	ModelID     string    `json:"model_id"`
	PredictedAt time.Time `json:"predicted_at"`
}
