package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// MinSecretLength is the shortest signing secret accepted, the HS256 key size.
const MinSecretLength = 32

// NullToken is issued when a principal cannot be signed. It never decodes to
// an authenticated identity.
const NullToken = "null"

const (
	sessionIssuer = "gazette"
	keyDerivation = "gazette session signing key v1"
	defaultMaxAge = 7 * 24 * time.Hour
)

var ErrSecretTooShort = fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)

type sessionClaims struct {
	Username string          `json:"username"`
	Roles    []domain.RoleID `json:"roles"`
	jwt.RegisteredClaims
}

// SessionCodec signs principals into HS256 session tokens carried by the
// auth cookie. Sessions are stateless: nothing is stored server side.
type SessionCodec struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewSessionCodec derives the signing key from secret. Tokens expire after
// maxAge.
func NewSessionCodec(secret []byte, maxAge time.Duration, logger zerolog.Logger) (*SessionCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}

	key := make([]byte, MinSecretLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyDerivation)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	return &SessionCodec{key: key, maxAge: maxAge, now: time.Now, logger: logger}, nil
}

// MaxAge is the validity window of issued tokens.
func (c *SessionCodec) MaxAge() time.Duration {
	return c.maxAge
}

// Encode signs p. If signing fails the null token is returned so that a
// login never fails on encoding alone.
func (c *SessionCodec) Encode(p domain.Principal) string {
	now := c.now().UTC()
	claims := sessionClaims{
		Username: p.Username,
		Roles:    p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", p.Username).Msg("session encode failed, issuing null identity")
		return NullToken
	}
	return signed
}

// Decode verifies token and returns the principal it carries. Anything that
// is not a valid, unexpired token for a known principal decodes to an
// anonymous identity.
func (c *SessionCodec) Decode(token string) domain.Identity {
	if token == "" || token == NullToken {
		return domain.Anonymous()
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		if err != nil && !errors.Is(err, jwt.ErrTokenMalformed) {
			c.logger.Debug().Err(err).Msg("rejected session token")
		}
		return domain.Anonymous()
	}

	if claims.Username == "" || claims.Subject != claims.Username {
		return domain.Anonymous()
	}
	for _, r := range claims.Roles {
		if !r.Valid() {
			return domain.Anonymous()
		}
	}

	return domain.Authenticated(domain.NewPrincipal(claims.Username, claims.Roles))
}
