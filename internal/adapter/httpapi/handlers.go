package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bhavyaa-1001/Drop2Smart/internal/adapter/groundwater"
	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
	"github.com/bhavyaa-1001/Drop2Smart/internal/predictor"
)

// Handler carries the dependencies of the API endpoints.
type Handler struct {
	predictions   *predictor.Service
	soil          domain.SoilProvider
	rainfall      domain.RainfallProvider
	groundwater   *groundwater.Store
	rainfallYears int
	logger        *slog.Logger
}

// NewHandler creates the API handler. The rainfall provider may be nil when
// rainfall analysis is disabled.
func NewHandler(predictions *predictor.Service, soil domain.SoilProvider,
	rainfall domain.RainfallProvider, gw *groundwater.Store,
	rainfallYears int, logger *slog.Logger) *Handler {
	return &Handler{
		predictions:   predictions,
		soil:          soil,
		rainfall:      rainfall,
		groundwater:   gw,
		rainfallYears: rainfallYears,
		logger:        logger,
	}
}

// PredictKsat serves POST /api/v1/predict-ksat.
func (h *Handler) PredictKsat(c *gin.Context) {
	var coord predictor.Coordinate
	if err := c.ShouldBindJSON(&coord); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if err := coord.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinate", "details": err.Error()})
		return
	}

	pred, err := h.predictions.Predict(c.Request.Context(), coord)
	if err != nil {
		h.logger.Error("prediction failed", "lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "prediction failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pred)
}

type batchRequest struct {
	Locations []predictor.Coordinate `json:"locations"`
}

// BatchPredictKsat serves POST /api/v1/batch-predict-ksat.
func (h *Handler) BatchPredictKsat(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	for i, coord := range req.Locations {
		if err := coord.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid coordinate",
				"index":   i,
				"details": err.Error(),
			})
			return
		}
	}

	result, err := h.predictions.PredictBatch(c.Request.Context(), req.Locations)
	if err != nil {
		var tooLarge predictor.ErrBatchTooLarge
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "batch too large", "details": err.Error()})
			return
		}
		if len(req.Locations) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty batch", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "batch prediction failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SoilData serves GET /api/v1/soil-data.
func (h *Handler) SoilData(c *gin.Context) {
	coord, ok := h.coordQuery(c)
	if !ok {
		return
	}

	raw, err := h.soil.SoilProperties(c.Request.Context(), coord.Latitude, coord.Longitude)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "soil lookup failed", "details": err.Error()})
		return
	}

	comp := domain.NormalizeSoilProperties(raw)
	texture, encoded := comp.Texture()
	c.JSON(http.StatusOK, gin.H{
		"latitude":        coord.Latitude,
		"longitude":       coord.Longitude,
		"soil_properties": comp,
		"soil_texture":    texture,
		"texture_encoded": encoded,
		"degraded":        raw.Degraded(),
	})
}

// TextureClassification serves GET /api/v1/texture-classification.
func (h *Handler) TextureClassification(c *gin.Context) {
	sand, ok := h.floatQuery(c, "sand")
	if !ok {
		return
	}
	silt, ok := h.floatQuery(c, "silt")
	if !ok {
		return
	}
	clay, ok := h.floatQuery(c, "clay")
	if !ok {
		return
	}
	if sand < 0 || sand > 100 || silt < 0 || silt > 100 || clay < 0 || clay > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percentages must be within [0, 100]"})
		return
	}
	if sum := sand + silt + clay; sum < 99 || sum > 101 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sand, silt and clay must sum to 100 (within 1)"})
		return
	}

	texture, encoded := domain.ClassifyTexture(sand, silt, clay)
	c.JSON(http.StatusOK, gin.H{
		"sand":            sand,
		"silt":            silt,
		"clay":            clay,
		"soil_texture":    texture,
		"texture_encoded": encoded,
		"table_version":   domain.TextureTableVersion,
	})
}

// ModelInfo serves GET /api/v1/model-info.
func (h *Handler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictions.ModelInfo())
}

// Rainfall serves GET /api/v1/rainfall.
func (h *Handler) Rainfall(c *gin.Context) {
	if h.rainfall == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rainfall analysis is disabled"})
		return
	}
	coord, ok := h.coordQuery(c)
	if !ok {
		return
	}

	years := h.rainfallYears
	if s := c.Query("years"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "years must be an integer within [1, 50]"})
			return
		}
		years = n
	}

	series, err := h.rainfall.DailyPrecipitation(c.Request.Context(), coord.Latitude, coord.Longitude, years)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "rainfall lookup failed", "details": err.Error()})
		return
	}

	summary := domain.SummarizeRainfall(series, years)
	c.JSON(http.StatusOK, gin.H{
		"latitude":  coord.Latitude,
		"longitude": coord.Longitude,
		"rainfall":  summary,
	})
}

func (h *Handler) coordQuery(c *gin.Context) (predictor.Coordinate, bool) {
	lat, ok := h.floatQuery(c, "lat")
	if !ok {
		return predictor.Coordinate{}, false
	}
	lon, ok := h.floatQuery(c, "lon")
	if !ok {
		return predictor.Coordinate{}, false
	}
	coord := predictor.Coordinate{Latitude: lat, Longitude: lon}
	if err := coord.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinate", "details": err.Error()})
		return predictor.Coordinate{}, false
	}
	return coord, true
}

func (h *Handler) floatQuery(c *gin.Context, name string) (float64, bool) {
	s := c.Query(name)
	if s == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter " + name})
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameter " + name})
		return 0, false
	}
	return v, true
}
