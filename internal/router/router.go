package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vicevalds/carelink/internal/middleware"
)

// Handler is anything that can mount its routes on the API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled  bool
	RequestsPerSecond float64
	Burst             int
	CORS              middleware.CORSConfig
	AudioDir          string
	AudioURLBase      string
}

// New assembles the gin engine: middleware chain, static audio
// artifacts, the metrics endpoint and every registered handler under
// /api.
func New(config Config, handlers ...Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(config.CORS))

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(config.RequestsPerSecond, config.Burst)
		engine.Use(limiter.RateLimit())
	}

	if config.AudioDir != "" {
		engine.Static(config.AudioURLBase, config.AudioDir)
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return engine
}
