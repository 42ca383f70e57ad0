package jwt

import (
	"net/http"
	"time"

	"staffd/internal/domain"
)

// Validator checks a token against the principal it is supposed to belong
// to. Every failure is a typed *domain.AuthError; true is returned only when
// all checks pass.
type Validator struct {
	codec *Codec
	now   func() time.Time
}

func NewValidator(codec *Codec) *Validator {
	return &Validator{codec: codec, now: time.Now}
}

func (v *Validator) Validate(token string, principal domain.Principal) (bool, error) {
	claims, err := v.codec.Decode(token)
	if err != nil {
		return false, err
	}
	if claims.Subject != principal.Email {
		return false, domain.NewAuthError(domain.CodeUsernameMismatch, http.StatusUnauthorized, "username mismatch in token")
	}
	// Decode applies clock-skew leeway; the strict expiry check happens here.
	if !claims.ExpiresAt.After(v.now()) {
		return false, domain.NewAuthError(domain.CodeTokenExpired, http.StatusUnauthorized, "token expired")
	}
	return true, nil
}
