package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/fightcrawl/internal/scheduler"
)

// HealthStatus represents the status of a health check.
type HealthStatus string

const (
	// HealthStatusHealthy means the last run succeeded or none has finished yet.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusDegraded means the last run failed; the scheduler keeps going.
	HealthStatusDegraded HealthStatus = "degraded"
)

// StatusFunc reports the scheduler state.
type StatusFunc func() scheduler.Status

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    HealthStatus     `json:"status"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Scheduler scheduler.Status `json:"scheduler"`
}

func registerHealthRoutes(router *gin.Engine, version string, status StatusFunc) {
	started := time.Now()

	router.GET("/health", func(c *gin.Context) {
		st := status()
		resp := HealthResponse{
			Status:    HealthStatusHealthy,
			Version:   version,
			Uptime:    time.Since(started).Round(time.Second).String(),
			Scheduler: st,
		}
		if st.LastError != "" {
			resp.Status = HealthStatusDegraded
		}
		c.JSON(http.StatusOK, resp)
	})
	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}
