// Package opa evaluates authorization decisions through a rego policy. It is
// selected with AUTHZ_MODE=opa and answers the same contract as the rbac
// table; the policy can be replaced at deploy time via AUTHZ_POLICY_PATH.
package opa

import (
	"context"
	"errors"
	"net/http"

	"staffd/internal/domain"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.staffd.authz.allow"

// defaultPolicy mirrors the rbac table: an empty requirement admits any
// authenticated subject, otherwise one of the required roles must be held.
const defaultPolicy = `package staffd.authz

default allow = false

allow {
	count(input.required) == 0
	input.subject != ""
}

allow {
	input.subject != ""
	some i, j
	input.roles[i] == input.required[j]
}
`

type Engine struct {
	query rego.PreparedEvalQuery
}

type policyInput struct {
	Subject  string   `json:"subject"`
	Roles    []string `json:"roles"`
	Required []string `json:"required"`
}

func NewEngine(ctx context.Context, policyPath string) (*Engine, error) {
	opts := []func(*rego.Rego){
		rego.Query(defaultQuery),
		rego.StrictBuiltinErrors(true),
	}
	if policyPath != "" {
		opts = append(opts, rego.Load([]string{policyPath}, nil))
	} else {
		opts = append(opts, rego.Module("authz.rego", defaultPolicy))
	}
	prepared, err := rego.New(opts...).PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{query: prepared}, nil
}

func (e *Engine) Require(ctx context.Context, principal domain.Principal, req domain.Requirement) error {
	if principal.Anonymous() {
		return domain.NewAuthError(domain.CodeUnauthorized, http.StatusUnauthorized, "unauthorized access")
	}
	input := policyInput{
		Subject:  principal.Email,
		Roles:    principal.Roles,
		Required: req.AnyOf,
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return domain.WrapAuthError(domain.CodeInternal, http.StatusInternalServerError,
			"authorization policy evaluation failed", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.WrapAuthError(domain.CodeInternal, http.StatusInternalServerError,
			"authorization policy evaluation failed", errors.New("empty policy result"))
	}
	allowed, _ := results[0].Expressions[0].Value.(bool)
	if !allowed {
		return domain.NewAuthError(domain.CodeAccessDenied, http.StatusForbidden,
			"you do not have permission to access this resource")
	}
	return nil
}
