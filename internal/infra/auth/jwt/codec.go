package jwt

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"staffd/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// minKeyBytes is the HS256 recommendation (256 bits). Shorter secrets
	// are tolerated with a warning so existing deployments keep working.
	minKeyBytes = 32

	// clockSkew is the tolerance applied to exp/iat/nbf during decode.
	clockSkew = 60 * time.Second
)

// Codec signs and verifies HS256 tokens. The key and issuer are fixed for
// the process lifetime; concurrent use is safe.
type Codec struct {
	key    []byte
	issuer string
	now    func() time.Time
}

func NewCodec(secret, issuer string, logger *slog.Logger) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, domain.ErrSecretKeyNotFound
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		key = []byte(secret)
	}
	if len(key) < minKeyBytes && logger != nil {
		logger.Warn("jwt secret key is shorter than recommended 256 bits", "key_bytes", len(key))
	}
	return &Codec{key: key, issuer: issuer, now: time.Now}, nil
}

// Encode issues a signed token for the principal. The role claim carries the
// first granted authority, falling back to ROLE_USER.
func (c *Codec) Encode(principal domain.Principal, ttl time.Duration) (string, error) {
	if principal.Email == "" {
		return "", domain.WrapAuthError(domain.CodeTokenGeneration, http.StatusInternalServerError,
			"failed to generate token", errors.New("principal has no identity"))
	}
	now := c.now()
	role := domain.RoleUser
	if len(principal.Roles) > 0 {
		role = principal.Roles[0]
	}
	claims := jwtlib.MapClaims{
		"sub":         principal.Email,
		"iss":         c.issuer,
		"iat":         jwtlib.NewNumericDate(now),
		"exp":         jwtlib.NewNumericDate(now.Add(ttl)),
		"jti":         uuid.NewString(),
		"email":       principal.Email,
		"role":        role,
		"authorities": principal.Roles,
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", domain.WrapAuthError(domain.CodeTokenGeneration, http.StatusInternalServerError,
			"failed to generate token", err)
	}
	return signed, nil
}

// Decode parses the token, verifies the signature and the required issuer,
// and returns the claim set. Every failure is a typed *domain.AuthError.
func (c *Codec) Decode(token string) (domain.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Claims{}, domain.NewAuthError(domain.CodeTokenEmpty, http.StatusUnauthorized, "empty jwt token")
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(c.issuer),
		jwtlib.WithLeeway(clockSkew),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(c.now),
	)
	parsed, err := parser.Parse(token, func(*jwtlib.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return domain.Claims{}, classifyParseError(err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return domain.Claims{}, domain.NewAuthError(domain.CodeTokenUnsupported, http.StatusUnauthorized, "unsupported jwt claims")
	}
	return claimsFromMap(mapClaims)
}

func classifyParseError(err error) *domain.AuthError {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return domain.WrapAuthError(domain.CodeTokenExpired, http.StatusUnauthorized, "token expired", err)
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return domain.WrapAuthError(domain.CodeSignatureInvalid, http.StatusUnauthorized, "jwt signature validation failed", err)
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return domain.WrapAuthError(domain.CodeTokenMalformed, http.StatusUnauthorized, "malformed jwt token", err)
	case errors.Is(err, jwtlib.ErrTokenInvalidIssuer),
		errors.Is(err, jwtlib.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwtlib.ErrTokenUnverifiable):
		return domain.WrapAuthError(domain.CodeTokenUnsupported, http.StatusUnauthorized, "unsupported jwt token", err)
	default:
		return domain.WrapAuthError(domain.CodeTokenMalformed, http.StatusUnauthorized, "invalid jwt token", err)
	}
}

func claimsFromMap(mc jwtlib.MapClaims) (domain.Claims, error) {
	subject, _ := mc["sub"].(string)
	if subject == "" {
		return domain.Claims{}, domain.NewAuthError(domain.CodeTokenUnsupported, http.StatusUnauthorized, "jwt token has no subject")
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.Claims{}, domain.NewAuthError(domain.CodeTokenUnsupported, http.StatusUnauthorized, "jwt token has no expiry")
	}
	claims := domain.Claims{
		Subject:   subject,
		ExpiresAt: exp.Time,
	}
	if iss, err := mc.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if jti, ok := mc["jti"].(string); ok {
		claims.TokenID = jti
	}
	if role, ok := mc["role"].(string); ok {
		claims.Role = role
	}
	if raw, ok := mc["authorities"].([]any); ok {
		for _, entry := range raw {
			if authority, ok := entry.(string); ok {
				claims.Authorities = append(claims.Authorities, authority)
			}
		}
	}
	return claims, nil
}
