package service

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/shopify"
	"github.com/jafarshop/storefront/pkg/errors"
)

// GraphQLGateway forwards one query to a shop's Admin API
type GraphQLGateway interface {
	Query(ctx context.Context, shop, accessToken, query string) shopify.Result
}

type StorefrontService struct {
	cfg     *config.Config
	gateway GraphQLGateway
	repos   *repository.Repositories
	logger  *zap.Logger
}

// NewStorefrontService creates the product grid service
func NewStorefrontService(cfg *config.Config, gateway GraphQLGateway, repos *repository.Repositories, logger *zap.Logger) *StorefrontService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontService{
		cfg:     cfg,
		gateway: gateway,
		repos:   repos,
		logger:  logger,
	}
}

// Authenticate looks up the shop's token. An empty shop or a missing row is
// not an error: it yields AuthKindNeedsAuth with the OAuth authorize URL.
func (s *StorefrontService) Authenticate(ctx context.Context, shop string) (AuthResult, error) {
	if shop == "" {
		return s.needsAuth(shop), nil
	}

	token, err := s.repos.Token.GetByShop(ctx, shop)
	if err != nil {
		var nf *errors.ErrNotFound
		if !stderrors.As(err, &nf) {
			return AuthResult{}, err
		}
		return s.needsAuth(shop), nil
	}
	return AuthResult{Kind: domain.AuthKindAuthenticated, Token: token}, nil
}

func (s *StorefrontService) needsAuth(shop string) AuthResult {
	redirect := shopify.AuthorizeURL(shop, s.cfg.Shopify.APIKey, s.cfg.Shopify.Scopes, s.cfg.RedirectURI())
	s.logger.Debug("No token for shop, redirecting to OAuth", zap.String("shop", shop))
	return AuthResult{Kind: domain.AuthKindNeedsAuth, RedirectURL: redirect}
}

// Page fetches the Subscribe products for an authenticated shop.
// A failed gateway call degrades to an empty grid.
func (s *StorefrontService) Page(ctx context.Context, token *domain.Token) StorefrontPage {
	page := StorefrontPage{Shop: token.Shop, Products: []domain.Product{}}

	res := s.gateway.Query(ctx, token.Shop, token.Token, shopify.SubscribeProductsQuery)
	if res.Null() {
		s.logger.Warn("Rendering empty product grid", zap.String("shop", token.Shop), zap.String("outcome", string(res.Outcome)))
		return page
	}

	page.Products = shopify.ParseProducts(res.Body)
	return page
}
