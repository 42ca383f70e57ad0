package jwt

import (
	"testing"
	"time"

	"staffd/internal/domain"
)

func TestValidateMatchingPrincipal(t *testing.T) {
	codec := newTestCodec(t, testSecret)
	validator := NewValidator(codec)
	principal := domain.Principal{Email: "user@example.com", Roles: []string{domain.RoleUser}}

	token, err := codec.Encode(principal, time.Hour)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	ok, err := validator.Validate(token, principal)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok {
		t.Fatal("expected token to validate")
	}
}

func TestValidateSubjectMismatch(t *testing.T) {
	codec := newTestCodec(t, testSecret)
	validator := NewValidator(codec)

	token, err := codec.Encode(domain.Principal{Email: "user@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	ok, err := validator.Validate(token, domain.Principal{Email: "other@example.com"})
	if ok {
		t.Fatal("expected validation failure")
	}
	if got := authCode(t, err); got != domain.CodeUsernameMismatch {
		t.Fatalf("code = %q", got)
	}
}

func TestValidateStrictExpiry(t *testing.T) {
	codec := newTestCodec(t, testSecret)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }

	principal := domain.Principal{Email: "user@example.com"}
	token, err := codec.Encode(principal, time.Minute)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Inside decode leeway but past the actual expiry; the strict check
	// must reject it.
	validator := NewValidator(codec)
	now := issued.Add(90 * time.Second)
	codec.now = func() time.Time { return now }
	validator.now = func() time.Time { return now }

	ok, err := validator.Validate(token, principal)
	if ok {
		t.Fatal("expected validation failure")
	}
	if got := authCode(t, err); got != domain.CodeTokenExpired {
		t.Fatalf("code = %q", got)
	}
}

func TestValidatePropagatesDecodeFailure(t *testing.T) {
	codec := newTestCodec(t, testSecret)
	validator := NewValidator(codec)

	ok, err := validator.Validate("not.a.jwt", domain.Principal{Email: "user@example.com"})
	if ok {
		t.Fatal("expected validation failure")
	}
	if got := authCode(t, err); got != domain.CodeTokenMalformed {
		t.Fatalf("code = %q", got)
	}
}
