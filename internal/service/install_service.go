package service

import (
	"context"
	stderrors "errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/shopify"
	"github.com/jafarshop/storefront/pkg/errors"
)

// CodeExchanger trades an OAuth authorization code for an access token
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, shop, code string) (string, error)
}

type InstallService struct {
	secret string
	oauth  CodeExchanger
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewInstallService creates the OAuth callback service
func NewInstallService(cfg *config.Config, oauth CodeExchanger, repos *repository.Repositories, logger *zap.Logger) *InstallService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstallService{
		secret: cfg.Shopify.APISecret,
		oauth:  oauth,
		repos:  repos,
		logger: logger,
	}
}

// Install verifies the signed callback, exchanges the code and stores the token.
// It returns the home URL to redirect to. Nothing is exchanged or written
// unless the signature verifies.
func (s *InstallService) Install(ctx context.Context, params url.Values) (string, error) {
	shop := params.Get("shop")

	if err := shopify.VerifyHMAC(s.secret, params); err != nil {
		s.record(shop, classify(err), err)
		return "", err
	}

	accessToken, err := s.oauth.ExchangeCode(ctx, shop, params.Get("code"))
	if err != nil {
		s.record(shop, domain.InstallResultExchange, err)
		return "", err
	}

	if err := s.repos.Token.Upsert(ctx, &domain.Token{Shop: shop, Token: accessToken}); err != nil {
		s.record(shop, domain.InstallResultPersistence, err)
		return "", err
	}

	s.record(shop, domain.InstallResultSuccess, nil)
	return "/?shop=" + url.QueryEscape(shop), nil
}

func (s *InstallService) record(shop string, result domain.InstallResult, err error) {
	metrics.RecordInstall(string(result))
	if err != nil {
		s.logger.Warn("Install failed", zap.String("shop", shop), zap.String("result", string(result)), zap.Error(err))
		return
	}
	s.logger.Info("Shop installed", zap.String("shop", shop))
}

func classify(err error) domain.InstallResult {
	var cfgErr *errors.ConfigurationError
	if stderrors.As(err, &cfgErr) {
		return domain.InstallResultConfiguration
	}
	return domain.InstallResultSignature
}
