package jwtinfra

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/synapsehub/support-portal/internal/config"
	"golang.org/x/crypto/hkdf"
)

// Claims holds the session cookie payload.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens. The signing key is
// derived from the configured session secret with HKDF so the raw secret is
// never used as key material directly.
type Provider struct {
	key    []byte
	expiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret is not configured")
	}
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(cfg.SessionSecret), nil, []byte("session-cookie-auth"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return &Provider{key: key, expiry: cfg.SessionTTL}, nil
}

func (p *Provider) Sign(sessionID string) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.key)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
