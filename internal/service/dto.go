package service

import (
	"github.com/jafarshop/storefront/internal/domain"
)

// HomeQuery is the query string of GET /
type HomeQuery struct {
	Shop string `form:"shop"`
}

// AuthResult tells the storefront handler whether to render or to redirect.
// Token is set only for AuthKindAuthenticated, RedirectURL only for AuthKindNeedsAuth.
type AuthResult struct {
	Kind        domain.AuthKind
	Token       *domain.Token
	RedirectURL string
}

// Authenticated reports whether the shop already has a stored token
func (r AuthResult) Authenticated() bool {
	return r.Kind == domain.AuthKindAuthenticated
}

// StorefrontPage is the view model of the product grid
type StorefrontPage struct {
	Shop     string
	Products []domain.Product
}
