package service

import (
	"context"
	"errors"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/cryptox"
	"github.com/akashhsiv/api-drf/pkg/idx"
	"github.com/akashhsiv/api-drf/pkg/jwtx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

type TokenService struct {
	Signer     jwtx.Signer
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssuePair starts a fresh session for the user: a signed access token plus
// an opaque refresh token persisted by fingerprint.
func (s *TokenService) IssuePair(ctx context.Context, u domain.User) (*domain.TokenPair, error) {
	now := time.Now()
	sessionID := idx.New().String()

	accessToken, err := s.signAccess(ctx, u, sessionID, now)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		SessionID: sessionID,
		ExpiresAt: now.Add(s.RefreshTTL),
		Revoked:   false,
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Refresh validates the provided refresh token (by fingerprint lookup +
// expiry/revocation check), then rotates it: the old token is revoked and a
// new pair is issued atomically.
func (s *TokenService) Refresh(ctx context.Context, refreshOpaque string) (*domain.TokenPair, error) {
	now := time.Now()

	// 1. Lookup the persisted refresh row by token fingerprint
	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	// 2. Validate token is not expired or revoked
	if rt.Revoked || now.After(rt.ExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	// 3. Load the user; a deleted or deactivated account kills the session
	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !u.Active {
		return nil, ErrInvalidRefresh
	}

	// 4. Issue new access token with the session ID preserved
	accessToken, err := s.signAccess(ctx, u, rt.SessionID, now)
	if err != nil {
		return nil, err
	}

	// 5. Rotate: generate new refresh token, revoke old one in a single
	// transaction
	newRefreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	newRT := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(newRefreshOpaque),
		SessionID: rt.SessionID, // Preserve session ID across refresh
		ExpiresAt: now.Add(s.RefreshTTL),
		Revoked:   false,
	}

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, fp); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, newRT)
	}); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshOpaque, // return new refresh token (rotated)
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Revoke revokes a single refresh token (by its opaque value). Unknown and
// already-revoked tokens are treated as success so logout stays idempotent
// and reveals nothing.
func (s *TokenService) Revoke(ctx context.Context, refreshOpaque string) error {
	fp := cryptox.FingerprintToken(refreshOpaque)
	err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, fp)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// RevokeAllForUser kills every live session for a user, e.g. after a
// password reset.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID string) error {
	return s.Store.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
}

func (s *TokenService) signAccess(ctx context.Context, u domain.User, sessionID string, now time.Time) (string, error) {
	roleName := ""
	if u.RoleID != "" {
		role, err := s.Store.Roles().GetRoleByID(ctx, u.RoleID)
		if err != nil {
			return "", err
		}
		roleName = role.Name
	}

	claims := jwtx.NewAccessClaims(
		u.ID,
		sessionID,
		u.Email,
		u.Name,
		string(u.Kind),
		roleName,
		u.Superuser,
		s.AccessTTL,
		s.Issuer,
		now,
	)
	return s.Signer.Sign(claims)
}
