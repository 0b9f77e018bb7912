package service

import (
	"context"
	stderrors "errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/shopify"
	"github.com/jafarshop/storefront/pkg/errors"
)

const secret = "shpss_test"

func testConfig() *config.Config {
	return &config.Config{
		AppURL: "https://app.example.com",
		Shopify: config.ShopifyConfig{
			APIKey:     "client-1",
			APISecret:  secret,
			Scopes:     "read_products",
			APIVersion: "2023-04",
		},
	}
}

func callback(shop, code string) url.Values {
	params := url.Values{
		"shop":      {shop},
		"code":      {code},
		"timestamp": {"1700000000"},
		"host":      {"YWRtaW4uc2hvcGlmeS5jb20"},
	}
	params.Set("hmac", shopify.Sign(secret, shopify.SignedMessage(params)))
	return params
}

func TestInstall_Success(t *testing.T) {
	repo := newMemTokenRepository()
	ex := &mockExchanger{ExchangeFunc: func(_ context.Context, shop, code string) (string, error) {
		assert.Equal(t, "example.myshopify.com", shop)
		assert.Equal(t, "code-1", code)
		return "abc123", nil
	}}
	svc := NewInstallService(testConfig(), ex, reposWith(repo), zap.NewNop())

	redirect, err := svc.Install(context.Background(), callback("example.myshopify.com", "code-1"))
	require.NoError(t, err)

	assert.Equal(t, "/?shop=example.myshopify.com", redirect)
	tok, err := repo.GetByShop(context.Background(), "example.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok.Token)
}

func TestInstall_ReinstallOverwrites(t *testing.T) {
	repo := newMemTokenRepository()
	tokens := []string{"first", "second"}
	ex := &mockExchanger{ExchangeFunc: func(context.Context, string, string) (string, error) {
		next := tokens[0]
		tokens = tokens[1:]
		return next, nil
	}}
	svc := NewInstallService(testConfig(), ex, reposWith(repo), nil)

	_, err := svc.Install(context.Background(), callback("example.myshopify.com", "code-1"))
	require.NoError(t, err)
	_, err = svc.Install(context.Background(), callback("example.myshopify.com", "code-2"))
	require.NoError(t, err)

	assert.Len(t, repo.rows, 1)
	assert.Equal(t, "second", repo.rows["example.myshopify.com"].Token)
}

func TestInstall_RejectedBeforeSideEffects(t *testing.T) {
	tampered := callback("example.myshopify.com", "code-1")
	tampered.Set("shop", "evil.myshopify.com")

	missingHMAC := callback("example.myshopify.com", "code-1")
	missingHMAC.Del("hmac")

	tests := []struct {
		name    string
		secret  string
		params  url.Values
		wantErr any
	}{
		{name: "bad signature", secret: secret, params: tampered, wantErr: &errors.SignatureError{}},
		{name: "missing hmac", secret: secret, params: missingHMAC, wantErr: &errors.ConfigurationError{}},
		{name: "secret not set", secret: "", params: callback("example.myshopify.com", "code-1"), wantErr: &errors.ConfigurationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Shopify.APISecret = tt.secret
			repo := newMemTokenRepository()
			ex := &mockExchanger{}
			svc := NewInstallService(cfg, ex, reposWith(repo), zap.NewNop())

			_, err := svc.Install(context.Background(), tt.params)
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)

			assert.Zero(t, ex.calls, "token exchange must not run")
			assert.Zero(t, repo.writes, "no token may be written")
		})
	}
}

func TestInstall_ExchangeFailureWritesNothing(t *testing.T) {
	repo := newMemTokenRepository()
	ex := &mockExchanger{ExchangeFunc: func(context.Context, string, string) (string, error) {
		return "", &errors.OAuthExchangeError{StatusCode: 400, Body: "invalid code"}
	}}
	svc := NewInstallService(testConfig(), ex, reposWith(repo), zap.NewNop())

	_, err := svc.Install(context.Background(), callback("example.myshopify.com", "code-1"))

	var exErr *errors.OAuthExchangeError
	require.True(t, stderrors.As(err, &exErr))
	assert.Zero(t, repo.writes)
}

func TestInstall_PersistenceFailure(t *testing.T) {
	repo := newMemTokenRepository()
	repo.saveErr = stderrors.New("db down")
	ex := &mockExchanger{ExchangeFunc: func(context.Context, string, string) (string, error) {
		return "abc123", nil
	}}
	svc := NewInstallService(testConfig(), ex, reposWith(repo), zap.NewNop())

	redirect, err := svc.Install(context.Background(), callback("example.myshopify.com", "code-1"))
	assert.ErrorIs(t, err, repo.saveErr)
	assert.Empty(t, redirect)
}
