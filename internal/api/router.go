package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/api/templates"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/shopify"
)

type routerOptions struct {
	httpClient *http.Client
}

// Option customizes NewRouter
type Option func(*routerOptions)

// WithHTTPClient sets the client used for calls to Shopify
func WithHTTPClient(client *http.Client) Option {
	return func(o *routerOptions) {
		o.httpClient = client
	}
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger, opts ...Option) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	oauth := shopify.NewOAuthClient(cfg.Shopify, o.httpClient, logger)
	gateway := shopify.NewGateway(cfg.Shopify.APIVersion, o.httpClient, logger)
	installSvc := service.NewInstallService(cfg, oauth, repos, logger)
	storefrontSvc := service.NewStorefrontService(cfg, gateway, repos, logger)

	router := gin.New()
	router.SetHTMLTemplate(templates.Load())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.Metrics())

	router.GET("/", handlers.HandleStorefront(storefrontSvc, logger))
	router.GET("/auth", handlers.HandleInstall(installSvc, logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}

// customRecovery logs panics and answers with a bare 500
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
