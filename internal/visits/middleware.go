package visits

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-api/internal/logger"
)

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/favicon",
	"/health",
	"/metrics",
	"/api/visits",
}

// Middleware records one visit per tracked request that was served
// successfully. Requests carrying DNT: 1 are never recorded.
func Middleware(store *Store, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			return
		}

		if err := store.Record(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), path); err != nil {
			log.WarnwCtx(c.Request.Context(), "recording visitor failed", "error", err)
		}
	}
}
