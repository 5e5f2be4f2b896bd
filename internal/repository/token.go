package repository

import (
	"context"

	"github.com/saltwind/grandline/api/internal/service"
	"github.com/saltwind/grandline/api/internal/store"
)

// TokenRepository stores refresh tokens under auth:refresh:{tokenHash}.
// Only token hashes ever reach storage.
type TokenRepository struct {
	store store.Store
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(s store.Store) *TokenRepository {
	return &TokenRepository{store: s}
}

func tokenKey(tokenHash string) string {
	return "auth:refresh:" + tokenHash
}

// Save stores a refresh token record
func (r *TokenRepository) Save(ctx context.Context, tokenHash string, token *service.RefreshToken) error {
	return r.store.Set(ctx, tokenKey(tokenHash), token)
}

// GetByHash loads a refresh token record. Returns store.ErrNotFound when
// the token was never issued or has been redeemed.
func (r *TokenRepository) GetByHash(ctx context.Context, tokenHash string) (*service.RefreshToken, error) {
	var token service.RefreshToken
	if err := r.store.Get(ctx, tokenKey(tokenHash), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a refresh token record
func (r *TokenRepository) Delete(ctx context.Context, tokenHash string) error {
	return r.store.Delete(ctx, tokenKey(tokenHash))
}
