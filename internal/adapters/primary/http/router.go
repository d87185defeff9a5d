package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// RouteRegistrar : chaque handler sait enregistrer ses propres routes.
type RouteRegistrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// NewRouter assemble le moteur gin : CORS, authentification, healthcheck,
// puis les routes de chaque handler sous /api/v1.
func NewRouter(env string, verifier ports.TokenVerifier, handlers ...RouteRegistrar) *gin.Engine {
	if env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(AuthMiddleware(verifier))
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return router
}
