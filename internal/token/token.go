// Package token issues and verifies the short-lived signed credentials
// that bind a request to a subject identity. Verification is pure: it
// never touches a store and fails closed on any defect.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL matches the server-side session lifetime.
const DefaultTTL = 8 * 24 * time.Hour

var ErrSigningFailed = errors.New("token signing failed")

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a credential for the subject expiring at now+ttl. A
// non-positive ttl falls back to the codec default. Claims carry
// whole-second resolution; the jti claim makes consecutive issues for
// one subject distinct even within the same second.
func (c *Codec) Issue(subjectID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", ErrSigningFailed
	}
	return signed, nil
}

// Verify returns the subject encoded in the token, or "" when the token
// is malformed, carries a bad signature, is expired, or lacks a subject.
// A token expiring exactly now is treated as expired.
func (c *Codec) Verify(tokenStr string) string {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return ""
	}
	// The expiry boundary is exclusive: a token expiring exactly now is dead.
	if claims.ExpiresAt == nil || !c.now().Before(claims.ExpiresAt.Time) {
		return ""
	}
	if claims.Subject == "" {
		return ""
	}
	return claims.Subject
}
