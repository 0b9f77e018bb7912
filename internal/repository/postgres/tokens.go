package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type tokenRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTokenRepository creates a new access token repository
func NewTokenRepository(db *sql.DB, logger *zap.Logger) *tokenRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tokenRepository{db: db, logger: logger}
}

func (r *tokenRepository) GetByShop(ctx context.Context, shop string) (*domain.Token, error) {
	query := `
		SELECT id, shop, token, created_at, updated_at
		FROM tokens
		WHERE shop = $1
	`
	var t domain.Token
	err := r.db.QueryRowContext(ctx, query, shop).Scan(
		&t.ID, &t.Shop, &t.Token, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "token", ID: shop}
	}
	if err != nil {
		r.logger.Error("Failed to get token", zap.Error(err), zap.String("shop", shop))
		return nil, err
	}
	return &t, nil
}

// Upsert keeps exactly one row per shop; the latest write wins.
func (r *tokenRepository) Upsert(ctx context.Context, t *domain.Token) error {
	query := `
		INSERT INTO tokens (id, shop, token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (shop) DO UPDATE SET
			token = EXCLUDED.token,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query, t.ID, t.Shop, t.Token, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert token", zap.Error(err), zap.String("shop", t.Shop))
		return err
	}
	return nil
}
