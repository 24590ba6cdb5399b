package router

import (
	"net/http"

	"portfolio-api/config"
	"portfolio-api/handlers"
	"portfolio-api/metrics"
	"portfolio-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Config  *config.Config
	Store   handlers.PortfolioStore
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// New builds the HTTP engine. Global middleware also runs for unmatched
// paths and methods, so every response carries the CORS headers and any
// OPTIONS request is answered with an empty 200.
func New(d Dependencies) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.RedirectTrailingSlash = false

	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Logger),
		middleware.Metrics(d.Metrics),
		middleware.CORS(d.Config.Server.CORSOrigin),
		middleware.Recovery(d.Logger),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
			"path":  c.Request.URL.Path,
		})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	health := handlers.HealthCheck(d.Config.Service)
	r.GET("/health", health)
	r.GET("/api/health", health)

	handlers.NewPortfolioHandler(d.Store, d.Logger, d.Metrics).RegisterRoutes(r)

	if d.Config.Metrics.Enabled && d.Metrics != nil {
		r.GET(d.Config.Metrics.Path, gin.WrapH(d.Metrics.Handler()))
	}

	return r
}
