package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
)

// GroundwaterStates serves GET /api/v1/groundwater/states.
func (h *Handler) GroundwaterStates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": h.groundwater.States()})
}

// GroundwaterDistricts serves GET /api/v1/groundwater/districts.
func (h *Handler) GroundwaterDistricts(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter state"})
		return
	}
	districts := h.groundwater.Districts(state)
	if districts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "state not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "districts": districts})
}

// GroundwaterLocations serves GET /api/v1/groundwater/locations.
func (h *Handler) GroundwaterLocations(c *gin.Context) {
	state, district := c.Query("state"), c.Query("district")
	if state == "" || district == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter state or district"})
		return
	}
	locations := h.groundwater.Locations(state, district)
	if locations == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "district not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "district": district, "locations": locations})
}

// GroundwaterSearch serves GET /api/v1/groundwater/search.
func (h *Handler) GroundwaterSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	results := h.groundwater.Search(query)
	c.JSON(http.StatusOK, gin.H{"query": query, "count": len(results), "results": results})
}

// GroundwaterRisk serves GET /api/v1/groundwater/risk.
func (h *Handler) GroundwaterRisk(c *gin.Context) {
	state, district, location := c.Query("state"), c.Query("district"), c.Query("location")
	if state == "" || district == "" || location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter state, district, or location"})
		return
	}

	rec, ok := h.groundwater.Location(state, district, location)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"location": rec,
		"risk":     domain.AssessGroundwaterRisk(rec),
	})
}

// GroundwaterNearby serves GET /api/v1/groundwater/nearby.
func (h *Handler) GroundwaterNearby(c *gin.Context) {
	state, district, location := c.Query("state"), c.Query("district"), c.Query("location")
	if state == "" || district == "" || location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter state, district, or location"})
		return
	}
	nearby := h.groundwater.Nearby(state, district, location, c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"count": len(nearby), "locations": nearby})
}

// GroundwaterStats serves GET /api/v1/groundwater/stats.
func (h *Handler) GroundwaterStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.groundwater.CategoryStats()})
}
