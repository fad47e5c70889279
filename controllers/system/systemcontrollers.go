package systemcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/juancarlosGilardi/flask-marcaciones/location"
)

const version = "2.0.0"

type Handler struct {
	DB  *gorm.DB
	GPS location.Config
}

func NewHandler(db *gorm.DB, gps location.Config) *Handler {
	return &Handler{DB: db, GPS: gps}
}

// Config exposes the non-secret runtime settings to the client app.
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"gps_settings": gin.H{
			"max_distance_meters": h.GPS.ToleranceMeters,
			"max_accuracy_meters": h.GPS.MaxAccuracyMeters,
		},
		"app_settings": gin.H{
			"version": version,
		},
		"features": gin.H{
			"gps_validation": true,
			"timezone":       "America/Lima",
		},
	})
}

// Health pings the database and self-tests the QR extractor. A failing
// check degrades the status and the response code.
func (h *Handler) Health(c *gin.Context) {
	dbStatus := "connected"
	var latencyMs float64

	sqlDB, err := h.DB.DB()
	if err != nil {
		dbStatus = "disconnected"
	} else {
		start := time.Now()
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			dbStatus = "disconnected"
		} else {
			latencyMs = float64(time.Since(start).Microseconds()) / 1000.0
		}
	}

	locationStatus := "available"
	if _, ok := location.ExtractCoordinates("TEST|HQ|C1|-12.0464,-77.0428|EST1|"); !ok {
		locationStatus = "error"
	}

	status := "healthy"
	code := http.StatusOK
	if dbStatus != "connected" || locationStatus != "available" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"database": gin.H{
			"status":     dbStatus,
			"latency_ms": latencyMs,
		},
		"services": gin.H{
			"location_service": locationStatus,
		},
		"system": gin.H{
			"version": version,
		},
	})
}
