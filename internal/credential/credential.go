// Package credential issues and verifies the signed session credential held
// in the browser cookie. The credential is an HS256 JWT; there is no
// server-side session table, so a credential stays valid until it expires.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingSecret means the codec was built without a signing secret.
	ErrMissingSecret = errors.New("credential signing secret is not configured")

	// ErrVerification is returned for every rejected credential, whatever the
	// cause: bad signature, malformed input, wrong algorithm or expiry.
	ErrVerification = errors.New("invalid credential")
)

// Claims is the identity carried by a session credential.
// StudentID is nil for accounts without a student id (staff, alumni).
type Claims struct {
	CMUAccount string  `json:"cmuAccount"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	StudentID  *string `json:"studentId,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies credentials with a symmetric key.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Codec
type Option func(*Codec)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a codec. An empty secret is a configuration fault.
func NewCodec(secret []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("credential ttl must be positive, got %s", ttl)
	}
	c := &Codec{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns how long issued credentials stay valid.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs the identity fields of claims with iat=now and exp=now+ttl.
// Registered claims already present on the input are replaced.
func (c *Codec) Issue(claims Claims) (string, error) {
	if c == nil || len(c.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := c.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.CMUAccount,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return token, nil
}

// Verify checks the signature (constant-time HMAC comparison inside jwt)
// and the expiry, and returns the decoded claims. Every failure is reported
// as ErrVerification so callers cannot tell causes apart.
func (c *Codec) Verify(token string) (*Claims, error) {
	if c == nil || len(c.secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrVerification
	}
	if claims.CMUAccount == "" {
		return nil, ErrVerification
	}
	return claims, nil
}
