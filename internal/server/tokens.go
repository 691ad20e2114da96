package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/server/middleware"
)

var (
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
	errMissingUserID           = errors.New("token has no user_id claim")
	errSubjectMismatch         = errors.New("token subject does not match user_id")
)

// AccessClaims is the payload of a bearer token. UserID names the learner whose
// matches the holder may read.
type AccessClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GetUserID implements middleware.UserIDGetter.
func (c *AccessClaims) GetUserID() uuid.UUID {
	return c.UserID
}

// Validate is called by the parser after the registered claims pass.
func (c *AccessClaims) Validate() error {
	if c.UserID == uuid.Nil {
		return errMissingUserID
	}
	if c.Subject != "" && c.Subject != c.UserID.String() {
		return errSubjectMismatch
	}
	return nil
}

// tokenFailures maps parser errors to client-facing causes, most specific first.
var tokenFailures = []struct {
	cause   error
	message string
}{
	{errUnexpectedSigningMethod, "unsupported signing method"},
	{jwt.ErrTokenMalformed, "malformed token"},
	{jwt.ErrTokenSignatureInvalid, "invalid token signature"},
	{jwt.ErrTokenExpired, "token expired"},
	{jwt.ErrTokenRequiredClaimMissing, "missing required claim"},
	{errMissingUserID, "missing user_id"},
	{errSubjectMismatch, "subject mismatch"},
}

func describeTokenError(err error) error {
	for _, f := range tokenFailures {
		if errors.Is(err, f.cause) {
			return fmt.Errorf("%s: %w", f.message, err)
		}
	}
	return fmt.Errorf("failed to parse token: %w", err)
}

// TokenAuthority verifies HS256 bearer tokens signed with the auth provider's shared
// secret. Issue mints equivalent tokens for local runs and tests.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenAuthority creates a TokenAuthority from the JWT settings.
func NewTokenAuthority(cfg *config.JWTConfig) *TokenAuthority {
	a := &TokenAuthority{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
		now:    time.Now,
	}
	a.parser = jwt.NewParser(
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)
	return a
}

// Issue signs a token for userID that expires after the configured lifetime.
func (a *TokenAuthority) Issue(userID uuid.UUID) (string, error) {
	now := a.now()
	claims := &AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims.
func (a *TokenAuthority) Verify(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &AccessClaims{}
	if _, err := a.parser.ParseWithClaims(tokenString, claims, a.key); err != nil {
		return nil, describeTokenError(err)
	}
	return claims, nil
}

// ValidateToken implements middleware.TokenValidator.
func (a *TokenAuthority) ValidateToken(tokenString string) (middleware.UserIDGetter, error) {
	claims, err := a.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// key only hands out the secret for HS256 tokens.
func (a *TokenAuthority) key(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
	}
	return a.secret, nil
}
