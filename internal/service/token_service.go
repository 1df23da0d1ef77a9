package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid covers a bad signature, a wrong secret, malformed input
// and expiry alike.
var ErrTokenInvalid = errors.New("token invalid")

// Claims is the payload of both token classes. Access tokens carry the
// profile snapshot; refresh tokens carry only the subject.
type Claims struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenService struct {
	users repository.UserRepository
	cfg   config.TokenConfig
	now   func() time.Time
}

func NewTokenService(users repository.UserRepository, cfg config.TokenConfig) *TokenService {
	return &TokenService{users: users, cfg: cfg, now: time.Now}
}

func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	claims := &Claims{
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		RegisteredClaims: s.registered(user.ID, s.cfg.AccessExpiry),
	}
	return s.sign(claims, s.cfg.AccessSecret)
}

func (s *TokenService) IssueRefreshToken(user *domain.User) (string, error) {
	claims := &Claims{RegisteredClaims: s.registered(user.ID, s.cfg.RefreshExpiry)}
	return s.sign(claims, s.cfg.RefreshSecret)
}

// Verify checks signature and expiry against secret.
func (s *TokenService) Verify(token, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) VerifyAccess(token string) (*Claims, error) {
	return s.Verify(token, s.cfg.AccessSecret)
}

func (s *TokenService) VerifyRefresh(token string) (*Claims, error) {
	return s.Verify(token, s.cfg.RefreshSecret)
}

// Rotate mints a fresh pair for the user and stores the refresh token as the
// only active one. The stored value is written once, so concurrent rotations
// resolve to whichever write lands last.
func (s *TokenService) Rotate(ctx context.Context, userID uuid.UUID) (*domain.User, TokenPair, error) {
	user, err := s.users.GetSanitizedByID(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	access, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, TokenPair{}, err
	}

	return user, TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) registered(userID uuid.UUID, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *TokenService) sign(claims *Claims, secret string) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
