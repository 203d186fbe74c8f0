package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/fightcrawl/internal/logger"
)

func recoveryMiddleware(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func loggerMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
