package repository

import (
	"context"

	"github.com/jafarshop/storefront/internal/domain"
)

// TokenRepository defines access token data access methods
type TokenRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.Token, error)
	Upsert(ctx context.Context, token *domain.Token) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Token TokenRepository
}
