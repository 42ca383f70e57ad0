package http

import (
	"errors"
	"net/http"

	"staffd/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"
	statusFailed  = "FAILED"
)

// CommonResponse is the envelope every endpoint answers with.
type CommonResponse struct {
	IsAuthenticated bool              `json:"isAuthenticated"`
	Status          string            `json:"status"`
	Message         string            `json:"message"`
	ErrorCode       string            `json:"errorCode,omitempty"`
	Data            any               `json:"data,omitempty"`
	Errors          map[string]string `json:"errors,omitempty"`
}

func writeSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, CommonResponse{
		IsAuthenticated: authenticated(c),
		Status:          statusSuccess,
		Message:         message,
		Data:            data,
	})
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, CommonResponse{
		IsAuthenticated: authenticated(c),
		Status:          statusError,
		Message:         message,
		ErrorCode:       code,
	})
}

func writeValidationFailure(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, CommonResponse{
		IsAuthenticated: authenticated(c),
		Status:          statusFailed,
		Message:         "validation failed",
		ErrorCode:       "VALIDATION_ERROR",
		Errors:          fieldErrors,
	})
}

func authenticated(c *gin.Context) bool {
	principal, ok := principalFrom(c)
	return ok && !principal.Anonymous()
}

// writeDomainError maps service-layer failures to the envelope. Anything not
// recognized is reported as an opaque internal error.
func writeDomainError(c *gin.Context, err error) {
	if authErr, ok := domain.AsAuthError(err); ok {
		status := authErr.Status
		if status == 0 {
			status = http.StatusUnauthorized
		}
		writeErrorCode(c, status, authErr.Code, authErr.Message)
		return
	}
	switch {
	case errors.Is(err, domain.ErrUserExists):
		writeErrorCode(c, http.StatusConflict, "USER_ALREADY_EXISTS", "user already exists")
	case errors.Is(err, domain.ErrEmployeeExists):
		writeErrorCode(c, http.StatusConflict, "EMPLOYEE_ALREADY_EXISTS", "employee email already in use")
	case errors.Is(err, domain.ErrUserNotFound):
		writeErrorCode(c, http.StatusNotFound, domain.CodePrincipalNotFound, "user not found")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		writeErrorCode(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
	case errors.Is(err, domain.ErrEmployeeInactive):
		writeErrorCode(c, http.StatusBadRequest, "EMPLOYEE_INACTIVE", "employee is inactive or deleted")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeErrorCode(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	default:
		writeErrorCode(c, http.StatusInternalServerError, domain.CodeInternal, "internal error")
	}
}
