package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/checkout-engine/internal/domain/auth"
)

const findAPIKeyByHashSQL = `SELECT id, key_hash, name FROM api_keys WHERE key_hash = $1`

var _ auth.Repository = (*APIKeyStore)(nil)

// APIKeyStore implements auth.Repository backed by PostgreSQL.
type APIKeyStore struct {
	pool *pgxpool.Pool
}

// NewAPIKeyStore returns an APIKeyStore that uses the given pool.
func NewAPIKeyStore(pool *pgxpool.Pool) *APIKeyStore {
	return &APIKeyStore{pool: pool}
}

// FindByHash looks up an API key by its HMAC-SHA256 hash.
// Returns auth.ErrKeyNotFound when no key matches.
func (s *APIKeyStore) FindByHash(ctx context.Context, hash string) (*auth.APIKeyInfo, error) {
	var info auth.APIKeyInfo
	err := s.pool.QueryRow(ctx, findAPIKeyByHashSQL, hash).Scan(&info.ID, &info.KeyHash, &info.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrKeyNotFound
		}
		return nil, fmt.Errorf("finding api key: %w", err)
	}
	return &info, nil
}
