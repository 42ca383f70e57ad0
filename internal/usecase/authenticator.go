package usecase

import (
	"context"
	"errors"
	"net/http"

	"staffd/internal/domain"
)

// Authenticator establishes a principal from a bearer token: decode the
// subject, resolve it through the identity lookup, then validate the token
// against the resolved principal. Every failure is a typed
// *domain.AuthError.
type Authenticator struct {
	Codec     domain.TokenCodec
	Validator domain.TokenValidator
	Lookup    domain.IdentityLookup
}

func (a *Authenticator) Authenticate(ctx context.Context, bearerToken string) (domain.Principal, error) {
	claims, err := a.Codec.Decode(bearerToken)
	if err != nil {
		return domain.Principal{}, err
	}
	if claims.Subject == "" {
		return domain.Principal{}, domain.NewAuthError(domain.CodeUsernameMismatch,
			http.StatusUnauthorized, "jwt token has no username")
	}
	principal, err := a.Lookup.LookupPrincipal(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.WrapAuthError(domain.CodePrincipalNotFound,
				http.StatusUnauthorized, "user not found", err)
		}
		return domain.Principal{}, err
	}
	if _, err := a.Validator.Validate(bearerToken, principal); err != nil {
		return domain.Principal{}, err
	}
	return principal, nil
}
