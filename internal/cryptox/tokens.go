package cryptox

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by a session token. The subject is the account email.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens issues and parses HS256 session tokens. Every token gets the issue
// time and a random ID, so two tokens minted in the same instant still differ.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens builds an issuer. An empty secret is replaced by a random one,
// which makes tokens unverifiable across restarts. ttl <= 0 means no expiry.
func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	if len(secret) == 0 {
		secret = common.GenerateRandByteArray(32)
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}
}

// Generate signs a new token for subject.
func (t *Tokens) Generate(subject string) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.NewString(),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Subject validates token and returns its subject.
func (t *Tokens) Subject(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", errors.Join(common.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
