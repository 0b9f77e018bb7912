package service

import (
	"context"
	"sync"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/shopify"
	"github.com/jafarshop/storefront/pkg/errors"
)

// memTokenRepository keeps one row per shop, like the ON CONFLICT upsert
type memTokenRepository struct {
	mu      sync.Mutex
	rows    map[string]domain.Token
	writes  int
	getErr  error
	saveErr error
}

func newMemTokenRepository() *memTokenRepository {
	return &memTokenRepository{rows: map[string]domain.Token{}}
}

func (r *memTokenRepository) GetByShop(_ context.Context, shop string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.rows[shop]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "token", ID: shop}
	}
	return &t, nil
}

func (r *memTokenRepository) Upsert(_ context.Context, t *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.rows[t.Shop] = *t
	return nil
}

func reposWith(r repository.TokenRepository) *repository.Repositories {
	return &repository.Repositories{Token: r}
}

type mockExchanger struct {
	ExchangeFunc func(ctx context.Context, shop, code string) (string, error)
	calls        int
}

func (m *mockExchanger) ExchangeCode(ctx context.Context, shop, code string) (string, error) {
	m.calls++
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, shop, code)
	}
	return "", nil
}

type mockGateway struct {
	QueryFunc func(ctx context.Context, shop, accessToken, query string) shopify.Result
}

func (m *mockGateway) Query(ctx context.Context, shop, accessToken, query string) shopify.Result {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, shop, accessToken, query)
	}
	return shopify.Result{}
}
