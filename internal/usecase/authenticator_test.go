package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"staffd/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCodec struct {
	claims domain.Claims
	err    error
}

func (c *staticCodec) Encode(domain.Principal, time.Duration) (string, error) {
	return "", nil
}

func (c *staticCodec) Decode(string) (domain.Claims, error) {
	if c.err != nil {
		return domain.Claims{}, c.err
	}
	return c.claims, nil
}

type staticValidator struct {
	err error
}

func (v *staticValidator) Validate(string, domain.Principal) (bool, error) {
	if v.err != nil {
		return false, v.err
	}
	return true, nil
}

func TestAuthenticate(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "user@example.com")

	auth := &Authenticator{
		Codec:     &staticCodec{claims: domain.Claims{Subject: "user@example.com"}},
		Validator: &staticValidator{},
		Lookup:    &IdentityLookup{Users: users},
	}
	principal, err := auth.Authenticate(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "user@example.com", principal.Email)
}

func TestAuthenticateDecodeFailure(t *testing.T) {
	decodeErr := domain.NewAuthError(domain.CodeTokenExpired, http.StatusUnauthorized, "token expired")
	auth := &Authenticator{
		Codec:     &staticCodec{err: decodeErr},
		Validator: &staticValidator{},
		Lookup:    &IdentityLookup{Users: newFakeUserRepo()},
	}
	_, err := auth.Authenticate(context.Background(), "token")
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeTokenExpired, authErr.Code)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	auth := &Authenticator{
		Codec:     &staticCodec{claims: domain.Claims{Subject: "ghost@example.com"}},
		Validator: &staticValidator{},
		Lookup:    &IdentityLookup{Users: newFakeUserRepo()},
	}
	_, err := auth.Authenticate(context.Background(), "token")
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodePrincipalNotFound, authErr.Code)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthenticateMissingSubject(t *testing.T) {
	auth := &Authenticator{
		Codec:     &staticCodec{claims: domain.Claims{}},
		Validator: &staticValidator{},
		Lookup:    &IdentityLookup{Users: newFakeUserRepo()},
	}
	_, err := auth.Authenticate(context.Background(), "token")
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeUsernameMismatch, authErr.Code)
}

func TestAuthenticateValidatorFailure(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com")

	validateErr := domain.NewAuthError(domain.CodeUsernameMismatch, http.StatusUnauthorized, "username mismatch in token")
	auth := &Authenticator{
		Codec:     &staticCodec{claims: domain.Claims{Subject: "user@example.com"}},
		Validator: &staticValidator{err: validateErr},
		Lookup:    &IdentityLookup{Users: users},
	}
	_, err := auth.Authenticate(context.Background(), "token")
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeUsernameMismatch, authErr.Code)
}
