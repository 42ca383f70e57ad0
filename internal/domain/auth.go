package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is an authenticated identity and its granted roles.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

func (p Principal) Anonymous() bool {
	return p.Email == ""
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Claims is the verified payload of a signed token.
type Claims struct {
	Subject     string
	Issuer      string
	Role        string
	Authorities []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	TokenID     string
}

// Requirement is a declarative per-operation access rule. An empty AnyOf
// means any authenticated principal qualifies.
type Requirement struct {
	AnyOf []string
}

type TokenCodec interface {
	Encode(principal Principal, ttl time.Duration) (string, error)
	Decode(token string) (Claims, error)
}

type TokenValidator interface {
	Validate(token string, principal Principal) (bool, error)
}

type IdentityLookup interface {
	LookupPrincipal(ctx context.Context, email string) (Principal, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}

type Authorizer interface {
	Require(ctx context.Context, principal Principal, req Requirement) error
}
