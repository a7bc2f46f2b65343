package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/notify"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/cryptox"
	"github.com/akashhsiv/api-drf/pkg/slogx"
)

var (
	ErrInvalidOTP   = errors.New("invalid_otp")
	ErrUnknownEmail = errors.New("unknown_email")
)

// DefaultOTPTTL is how long a reset code stays redeemable.
const DefaultOTPTTL = 15 * time.Minute

type PasswordResetService struct {
	Store  store.Store
	Sender notify.Sender
	OTPTTL time.Duration
}

// ttl defaults only when unset; negative values are kept so callers can
// mint codes that are already expired.
func (s *PasswordResetService) ttl() time.Duration {
	if s.OTPTTL != 0 {
		return s.OTPTTL
	}
	return DefaultOTPTTL
}

// RequestReset generates and delivers a reset code for the account with the
// given email in the given population. It succeeds silently when the email
// is unknown, and delivery failures are logged but not surfaced, so the
// endpoint's response never depends on whether an account exists.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string, kind domain.Kind) error {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := cryptox.GenerateOTPCode()
	if err != nil {
		return err
	}

	if err := s.Store.Users().SetOTP(ctx, u.ID, code, time.Now().UTC().Add(s.ttl())); err != nil {
		return err
	}

	if err := s.Sender.SendResetCode(ctx, u.Email, code); err != nil {
		log.Error("reset code delivery failed", "err", err, "user_id", u.ID)
	}
	return nil
}

// Reset redeems a code: the password is replaced, the OTP pair cleared, and
// every live session revoked, all in one transaction. Unlike RequestReset
// this endpoint does report an unknown email, matching its public contract.
func (s *PasswordResetService) Reset(ctx context.Context, email string, kind domain.Kind, code, newPassword string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	if u.OTPCode == nil || u.OTPExpiresAt == nil {
		return ErrInvalidOTP
	}
	if time.Now().UTC().After(*u.OTPExpiresAt) {
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(*u.OTPCode), []byte(code)) != 1 {
		return ErrInvalidOTP
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		if err := tx.Users().ClearOTP(ctx, u.ID); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, u.ID)
	}); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset completed", "user_id", u.ID)
	return nil
}
