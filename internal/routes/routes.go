package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-api/internal/config"
	"catalog-api/internal/handlers"
	"catalog-api/internal/middleware"
)

func NewRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	categoryHandler *handlers.CategoryHandler,
	productHandler *handlers.ProductHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// CREATE ROUTER
	// gin.New instead of gin.Default: logging and recovery are ours
	router := gin.New()

	// ORDER MATTERS:
	// RequestID first so every later log line carries the id,
	// ErrorHandler last so it sees what the handler attached with c.Error
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.ErrorHandler(logger),
	)
	router.NoRoute(middleware.NoRoute())

	// ==========================================================================
	// RESOURCE ROUTES
	// ==========================================================================
	// /categories, /categories/:id, /categories/:id/products
	categoryHandler.RegisterRoutes(router)
	// /products, /products/:id
	productHandler.RegisterRoutes(router)

	// ==========================================================================
	// HEALTH CHECK ROUTE
	// ==========================================================================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "healthy",
		})
	})

	return router
}
