package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-api/internal/logger"
	"github.com/Zachkp/portfolio-api/internal/metrics"
	"github.com/Zachkp/portfolio-api/internal/visits"
)

const serviceName = "portfolio-api"

type RouterConfig struct {
	Version     string
	CORSOrigins []string
	Handler     *Handler
	Metrics     *metrics.Metrics
	Log         *logger.Logger
	// Visits is nil when visitor tracking is disabled.
	Visits *visits.Store
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(RequestID(cfg.Log))
	r.Use(cfg.Metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	var db Pinger
	if cfg.Visits != nil {
		db = cfg.Visits
		r.Use(visits.Middleware(cfg.Visits, cfg.Log))
	}

	NewHealthHandler(serviceName, cfg.Version, db).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	apiGroup := r.Group("/api")
	cfg.Handler.RegisterRoutes(apiGroup)
	if cfg.Visits != nil {
		apiGroup.GET("/visits/stats", visitStats(cfg.Visits, cfg.Log))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.ExposeHeaders = []string{requestIDHeader, identityHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func visitStats(store *visits.Store, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := store.Stats(c.Request.Context())
		if err != nil {
			log.ErrorwCtx(c.Request.Context(), "loading visit stats failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
