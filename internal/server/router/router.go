package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(containers *handlers.ContainerHandler, inventory *handlers.InventoryHandler, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/containers", containers.Create)
	r.GET("/containers", containers.List)
	r.GET("/containers/:id", containers.Get)

	inv := r.Group("/containers/:id/inventory")
	inv.GET("/nursery", inventory.Nursery)
	inv.GET("/cultivation", inventory.Cultivation)
	inv.POST("/tray", inventory.ProvisionTray)
	inv.GET("/tray/:tray_id", inventory.GetTray)
	inv.DELETE("/tray/:tray_id", inventory.DeleteTray)
	inv.POST("/panel", inventory.ProvisionPanel)
	inv.GET("/panel/:panel_id", inventory.GetPanel)
	inv.DELETE("/panel/:panel_id", inventory.DeletePanel)
	inv.GET("/crops", inventory.Crops)
	inv.GET("/crop/:crop_id", inventory.Crop)
	inv.GET("/metrics", inventory.Metrics)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
