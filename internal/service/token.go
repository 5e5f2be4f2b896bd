package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
	"github.com/saltwind/grandline/api/pkg/jwt"
)

// RefreshToken represents a stored refresh token. The raw token is opaque
// to the client and only its SHA-256 hash is persisted.
type RefreshToken struct {
	UserID    string    `json:"user_id"`
	ExpiresOn time.Time `json:"expires_on"`
	CreatedOn time.Time `json:"created_on"`
}

// TokenRepository defines the interface for refresh token storage
type TokenRepository interface {
	Save(ctx context.Context, tokenHash string, token *RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Delete(ctx context.Context, tokenHash string) error
}

// TokenService handles JWT and refresh token operations
type TokenService struct {
	jwtService      *jwt.Service
	tokenRepo       TokenRepository
	refreshDuration time.Duration
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService      *jwt.Service
	TokenRepo       TokenRepository
	RefreshDuration time.Duration // Default: 30 days
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	if cfg.RefreshDuration == 0 {
		cfg.RefreshDuration = 30 * 24 * time.Hour
	}

	return &TokenService{
		jwtService:      cfg.JWTService,
		tokenRepo:       cfg.TokenRepo,
		refreshDuration: cfg.RefreshDuration,
	}
}

// GenerateTokenPair creates a new access token and refresh token for a user
func (s *TokenService) GenerateTokenPair(ctx context.Context, user *model.User) (*model.TokenPair, error) {
	claims := jwt.Claims{
		Subject: user.ID,
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
	}

	accessToken, err := s.jwtService.Sign(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	stored := &RefreshToken{
		UserID:    user.ID,
		ExpiresOn: time.Now().Add(s.refreshDuration),
		CreatedOn: time.Now(),
	}
	if err := s.tokenRepo.Save(ctx, hashToken(refreshToken), stored); err != nil {
		return nil, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtService.GetExpiration().Seconds()),
	}, nil
}

// Redeem validates a refresh token and returns its owner's user id.
// Tokens are single use: the stored record is deleted before the caller
// issues a fresh pair.
func (s *TokenService) Redeem(ctx context.Context, refreshToken string) (string, error) {
	tokenHash := hashToken(refreshToken)

	stored, err := s.tokenRepo.GetByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if time.Now().After(stored.ExpiresOn) {
		_ = s.tokenRepo.Delete(ctx, tokenHash)
		return "", ErrRefreshTokenExpired
	}

	if err := s.tokenRepo.Delete(ctx, tokenHash); err != nil {
		return "", err
	}
	return stored.UserID, nil
}

// ValidateAccessToken validates an access token and returns the claims
func (s *TokenService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}

// generateRefreshToken creates a cryptographically secure random token
func generateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
