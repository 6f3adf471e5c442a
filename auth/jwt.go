package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures HMAC bearer tokens for admin clients.
type JWTConfig struct {
	// Secret is the HS256 signing key.
	Secret []byte

	// Issuer, when set, must match the iss claim.
	Issuer string

	// Audience, when set, must appear in the aud claim.
	Audience string

	// Leeway tolerates clock skew on exp/nbf/iat.
	Leeway time.Duration

	// Now is the clock used for validation. Defaults to time.Now.
	Now func() time.Time
}

// Claims is the token payload. Roles is a custom claim.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator validates "Authorization: Bearer <token>" headers.
type JWTAuthenticator struct {
	config JWTConfig
	parser *jwt.Parser
}

const bearerPrefix = "Bearer "

// NewJWTAuthenticator returns ErrEmptySecret when cfg.Secret is empty.
func NewJWTAuthenticator(cfg JWTConfig) (*JWTAuthenticator, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithTimeFunc(cfg.Now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &JWTAuthenticator{config: cfg, parser: jwt.NewParser(opts...)}, nil
}

// Name returns "jwt".
func (a *JWTAuthenticator) Name() string { return "jwt" }

// Supports reports whether a bearer token is present.
func (a *JWTAuthenticator) Supports(req *Request) bool {
	return strings.HasPrefix(req.Header("Authorization"), bearerPrefix)
}

// Authenticate validates the bearer token.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, ok := strings.CutPrefix(req.Header("Authorization"), bearerPrefix)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return Failure(ErrMissingCredentials, MethodJWT), nil
	}

	var claims Claims
	_, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.config.Secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Failure(ErrTokenExpired, MethodJWT), nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Failure(ErrTokenMalformed, MethodJWT), nil
	default:
		return Failure(ErrInvalidCredentials, MethodJWT), nil
	}

	if claims.Subject == "" {
		return Failure(ErrInvalidCredentials, MethodJWT), nil
	}

	id := &Identity{
		Principal: claims.Subject,
		Roles:     claims.Roles,
		Method:    MethodJWT,
		Claims:    map[string]any{"jti": claims.ID},
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return Success(id), nil
}

// IssueToken signs an HS256 token for subject. It is used by operators to
// mint admin credentials out of band.
func (a *JWTAuthenticator) IssueToken(subject string, roles []string, ttl time.Duration) (string, error) {
	now := a.config.Now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    a.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if a.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{a.config.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.config.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

var _ Authenticator = (*JWTAuthenticator)(nil)
