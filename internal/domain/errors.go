package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSecretKeyNotFound  = errors.New("jwt secret key is empty")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeExists     = errors.New("employee already exists")
	ErrEmployeeInactive   = errors.New("employee inactive or deleted")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Stable machine-readable failure codes carried on AuthError.
const (
	CodeTokenEmpty        = "JWT_EMPTY"
	CodeTokenMalformed    = "JWT_MALFORMED"
	CodeTokenUnsupported  = "JWT_UNSUPPORTED"
	CodeSignatureInvalid  = "JWT_INVALID_SIGNATURE"
	CodeTokenExpired      = "JWT_EXPIRED"
	CodeUsernameMismatch  = "JWT_INVALID_USERNAME"
	CodePrincipalNotFound = "USER_NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeAccessDenied      = "ACCESS_DENIED"
	CodeTokenGeneration   = "TOKEN_GENERATION_FAILED"
	CodeInternal          = "INTERNAL_ERROR"
)

// AuthError is a tagged authentication or authorization failure. Status is
// the HTTP status the failure maps to at the boundary.
type AuthError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(code string, status int, message string) *AuthError {
	return &AuthError{Code: code, Status: status, Message: message}
}

func WrapAuthError(code string, status int, message string, err error) *AuthError {
	return &AuthError{Code: code, Status: status, Message: message, Err: err}
}

func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
