// Package service implements authentication: credential checks, JWT
// issuance and refresh, and self-service password changes.
package service

import (
	"context"
	"time"

	"leaddesk_backend/internal/auth/password"
	"leaddesk_backend/internal/auth/transport"
	usersrepo "leaddesk_backend/internal/users/repository"
	"leaddesk_backend/platform/apperr"
	"leaddesk_backend/platform/config"
	"leaddesk_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// UserStore defines the account access needed by the auth service.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (usersrepo.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (usersrepo.User, error)
	Update(ctx context.Context, id uuid.UUID, params usersrepo.UpdateUserParams) (usersrepo.User, error)
}

// Service handles authentication operations.
type Service struct {
	users UserStore
	cfg   config.AuthServiceConfig
	log   *logger.Logger
}

func New(users UserStore, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{users: users, cfg: cfg, log: log}
}

// SignIn verifies the credentials and issues an access/refresh token pair.
// Deactivated accounts are rejected the same way as bad credentials.
func (s *Service) SignIn(ctx context.Context, username, plainPassword string) (transport.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.log.AuthEvent("login", username, false, "unknown user")
		return transport.TokenResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if !password.Compare(user.PasswordHash, plainPassword) {
		s.log.AuthEvent("login", username, false, "wrong password")
		return transport.TokenResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if !user.IsActive {
		s.log.AuthEvent("login", username, false, "account deactivated")
		return transport.TokenResponse{}, apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("login", username, true, "")
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The account is
// re-checked so deactivation takes effect at the next refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (transport.TokenResponse, error) {
	claims, err := s.parseToken(refreshToken, refreshTokenType, s.cfg.GetJWTRefreshSecret())
	if err != nil {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	return s.issueTokens(user)
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}

	if !password.Compare(user.PasswordHash, current) {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := password.Hash(next)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	if _, err := s.users.Update(ctx, userID, usersrepo.UpdateUserParams{PasswordHash: &hash}); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update password", err)
	}

	s.log.AuthEvent("password_change", user.Username, true, "")
	return nil
}

func (s *Service) issueTokens(user usersrepo.User) (transport.TokenResponse, error) {
	access, err := s.signJWT(user, accessTokenType, s.cfg.GetAccessTokenTTL(), s.cfg.GetJWTAccessSecret())
	if err != nil {
		return transport.TokenResponse{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	refresh, err := s.signJWT(user, refreshTokenType, s.cfg.GetRefreshTokenTTL(), s.cfg.GetJWTRefreshSecret())
	if err != nil {
		return transport.TokenResponse{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	return transport.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: transport.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

func (s *Service) signJWT(user usersrepo.User, tokenType string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"roles":    []string{user.Role},
		"type":     tokenType,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (s *Service) parseToken(raw, wantType, secret string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, jwt.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}
