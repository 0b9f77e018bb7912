package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/service"
)

// HandleInstall handles GET /auth, the OAuth callback Shopify redirects to
// after the merchant approves the app. Query: shop, hmac, code plus whatever
// else Shopify signed (timestamp, host, state...).
// Failures are not explained to the browser: any error is a bare 500.
func HandleInstall(svc *service.InstallService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := c.Request.URL.Query()

		redirect, err := svc.Install(c.Request.Context(), params)
		if err != nil {
			logger.Error("OAuth callback failed",
				zap.String("shop", params.Get("shop")),
				zap.String("error_type", fmt.Sprintf("%T", err)),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		c.Redirect(http.StatusFound, redirect)
	}
}
