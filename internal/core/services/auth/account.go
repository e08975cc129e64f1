package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

const accountTokenBytes = 32

// newAccountToken returns the raw token for the mail link and the digest to store.
func newAccountToken() (string, string, error) {
	buf := make([]byte, accountTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(buf)
	return raw, hashAccountToken(raw), nil
}

func hashAccountToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *SessionService) link(path, token string) string {
	return fmt.Sprintf("%s/api/v1/auth/%s/%s", strings.TrimRight(s.mailCfg.BaseURL, "/"), path, token)
}

func (s *SessionService) sendVerification(ctx context.Context, user *domain.Users) error {
	if user.Email == nil {
		return errs.Tag(errs.KindValidation, errs.EmailRequired)
	}
	raw, digest, err := newAccountToken()
	if err != nil {
		return errs.Wrap(errs.KindUnknown, err, "Failed to generate token")
	}
	expiry := time.Now().UTC().Add(s.mailCfg.TokenTTL)
	if err := s.userPort.SetEmailVerificationToken(ctx, user.ID, digest, expiry); err != nil {
		return errs.Wrap(errs.KindPersistence, err, "Failed to store verification token")
	}
	user.EmailVerificationToken = &digest
	user.EmailVerificationExpiry = &expiry

	if err := s.mailer.SendVerification(ctx, *user.Email, user.UserName, s.link("verify", raw)); err != nil {
		return errs.Wrap(errs.KindUnknown, err, "Failed to send verification email")
	}
	return nil
}

func (s *SessionService) VerifyEmail(ctx context.Context, token string) (*domain.Users, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidVerificationToken)
	}
	user, err := s.userPort.GetByEmailVerificationToken(ctx, hashAccountToken(token), time.Now().UTC())
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if user == nil {
		return nil, errs.Tag(errs.KindUnauthorized, errs.VerificationTokenExpired)
	}
	if err := s.userPort.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to verify user")
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	user.EmailVerificationExpiry = nil
	s.logger.Info("email verified", "userId", user.ID)
	return user, nil
}

func (s *SessionService) ResendVerification(ctx context.Context, email string) (*domain.Users, error) {
	user, err := s.userByEmail(ctx, email, errs.UserNotRegistered)
	if err != nil {
		return nil, err
	}
	if user.IsEmailVerified {
		return nil, errs.Tag(errs.KindConflict, errs.EmailAlreadyVerified)
	}
	if err := s.sendVerification(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) ForgotPassword(ctx context.Context, email string) (*domain.Users, error) {
	user, err := s.userByEmail(ctx, email, errs.UserNotFound)
	if err != nil {
		return nil, err
	}

	raw, digest, err := newAccountToken()
	if err != nil {
		return nil, errs.Wrap(errs.KindUnknown, err, "Failed to generate token")
	}
	expiry := time.Now().UTC().Add(s.mailCfg.TokenTTL)
	if err := s.userPort.SetForgotPasswordToken(ctx, user.ID, digest, expiry); err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to store reset token")
	}
	user.ForgotPasswordToken = &digest
	user.ForgotPasswordExpiry = &expiry

	if err := s.mailer.SendPasswordReset(ctx, *user.Email, user.UserName, s.link("reset-password", raw)); err != nil {
		return nil, errs.Wrap(errs.KindUnknown, err, "Failed to send reset email")
	}
	s.logger.Info("password reset requested", "userId", user.ID)
	return user, nil
}

// ResetPassword also ends the user's refresh session.
func (s *SessionService) ResetPassword(ctx context.Context, token string, req domain.ResetPasswordRequest) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.Tag(errs.KindValidation, errs.ResetTokenInvalid)
	}
	user, err := s.userPort.GetByForgotPasswordToken(ctx, hashAccountToken(token), time.Now().UTC())
	if err != nil {
		return errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if user == nil {
		return errs.Tag(errs.KindValidation, errs.ResetTokenInvalid)
	}
	if req.Password != req.ConfPassword {
		return errs.Tag(errs.KindValidation, errs.PasswordMismatch)
	}
	if len(req.Password) < minPasswordLength {
		return errs.Newf(errs.KindValidation, "Password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.jwtProvider.EncryptPassword(ctx, req.Password)
	if err != nil {
		return errs.Wrap(errs.KindUnknown, err, "Failed to hash password")
	}
	if err := s.userPort.ResetPassword(ctx, user.ID, hash); err != nil {
		return errs.Wrap(errs.KindPersistence, err, "Failed to reset password")
	}
	if err := s.sessions.DeleteRefreshToken(ctx, user.ID); err != nil {
		s.logger.Warn("session not cleared after password reset", "userId", user.ID, "error", err)
	}
	s.logger.Info("password reset", "userId", user.ID)
	return nil
}

func (s *SessionService) userByEmail(ctx context.Context, email string, missing error) (*domain.Users, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errs.Tag(errs.KindValidation, errs.EmailRequired)
	}
	user, err := s.userPort.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if user == nil || user.Email == nil {
		return nil, errs.Tag(errs.KindUnauthorized, missing)
	}
	return user, nil
}
