package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/api/templates"
	"github.com/jafarshop/storefront/internal/service"
)

// HandleStorefront handles GET /?shop=. Shops without a stored token, and
// requests without a shop, are sent through OAuth; the others get the
// Subscribe product grid.
func HandleStorefront(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.HomeQuery
		_ = c.ShouldBindQuery(&q)
		shop := strings.TrimSpace(q.Shop)

		auth, err := svc.Authenticate(c.Request.Context(), shop)
		if err != nil {
			logger.Error("Failed to look up token",
				zap.String("shop", shop),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		if !auth.Authenticated() {
			c.Redirect(http.StatusFound, auth.RedirectURL)
			return
		}

		page := svc.Page(c.Request.Context(), auth.Token)
		c.HTML(http.StatusOK, templates.Storefront, page)
	}
}
