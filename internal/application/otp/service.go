package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/synapsehub/support-portal/internal/application/session"
	"github.com/synapsehub/support-portal/internal/domain"
	"github.com/synapsehub/support-portal/internal/infrastructure/smtp"
)

// CodeStore is the keyed store for pending verification codes. At most one
// entry exists per email; Put replaces unconditionally.
type CodeStore interface {
	Put(ctx context.Context, pc *domain.PendingCode) error
	Get(ctx context.Context, email string) (*domain.PendingCode, error)
	Delete(ctx context.Context, email string) error
}

type RequestCodeInput struct {
	Email string `json:"email" validate:"required,contains=@"`
}

type VerifyCodeInput struct {
	Email string `json:"email" validate:"required,contains=@"`
	OTP   string `json:"otp" validate:"required"`
}

type Service interface {
	// RequestCode issues a fresh code for email and delivers it by email.
	// Any previously pending code for the address is invalidated.
	RequestCode(ctx context.Context, email string) error
	// VerifyCode checks the submitted code, consumes it on success and
	// records the verified email on the caller's session.
	VerifyCode(ctx context.Context, email, code string, sess *session.Session) error
}

type service struct {
	codes  CodeStore
	mailer smtp.Mailer
	ttl    time.Duration
}

func NewService(codes CodeStore, mailer smtp.Mailer, ttl time.Duration) Service {
	return &service{codes: codes, mailer: mailer, ttl: ttl}
}

func (s *service) RequestCode(ctx context.Context, email string) error {
	// Minimal shape check only; full RFC validation would reject addresses
	// that real mail servers accept.
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %w", domain.ErrBadRequest)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	pc := &domain.PendingCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl).Unix(),
	}
	if err := s.codes.Put(ctx, pc); err != nil {
		return err
	}

	body, err := smtp.RenderOTP(code, s.ttl)
	if err != nil {
		return err
	}
	if err := s.mailer.SendHTML(email, "Verification Code - SYNAPSE Support", body); err != nil {
		slog.Error("failed to send verification code", "email", email, "err", err)
		return fmt.Errorf("could not deliver verification code: %w", domain.ErrUpstream)
	}
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string, sess *session.Session) error {
	pc, err := s.codes.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}
	if time.Now().Unix() > pc.ExpiresAt {
		// Lazy expiry: purge on read so a later retry reports NotFound.
		if err := s.codes.Delete(ctx, email); err != nil {
			slog.Warn("failed to delete expired code", "email", email, "err", err)
		}
		return fmt.Errorf("verification code expired: %w", domain.ErrExpired)
	}
	if pc.Code != code {
		// Entry stays put: a mistyped code may be retried within the window.
		return fmt.Errorf("verification code does not match: %w", domain.ErrMismatch)
	}

	// Single use: consume before granting trust.
	if err := s.codes.Delete(ctx, email); err != nil {
		slog.Warn("failed to delete consumed code", "email", email, "err", err)
	}
	sess.SetVerifiedEmail(email)
	return nil
}

// generateCode draws a 6-digit code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
