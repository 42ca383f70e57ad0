// Package rbac decides access from the granted role set of an authenticated
// principal. Requirements are declared per route; an anonymous principal on
// a protected operation is unauthorized (401), a role miss on an
// authenticated one is access denied (403).
package rbac

import (
	"context"
	"net/http"

	"staffd/internal/domain"
)

type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) Require(_ context.Context, principal domain.Principal, req domain.Requirement) error {
	if principal.Anonymous() {
		return domain.NewAuthError(domain.CodeUnauthorized, http.StatusUnauthorized, "unauthorized access")
	}
	if len(req.AnyOf) == 0 {
		return nil
	}
	for _, role := range req.AnyOf {
		if principal.HasRole(role) {
			return nil
		}
	}
	return domain.NewAuthError(domain.CodeAccessDenied, http.StatusForbidden,
		"you do not have permission to access this resource")
}
