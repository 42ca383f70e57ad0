package http

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"staffd/internal/domain"
	"staffd/internal/usecase"

	"github.com/gin-gonic/gin"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	Email     string `json:"email"`
}

func userResponseFrom(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	fieldErrors := map[string]string{}
	if !emailPattern.MatchString(req.Email) {
		fieldErrors["email"] = "must be a valid email address"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "must be at least 8 characters"
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}
	if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		fieldErrors["role"] = "must be ROLE_USER or ROLE_ADMIN"
	}
	if len(fieldErrors) > 0 {
		writeValidationFailure(c, fieldErrors)
		return
	}

	user, err := s.users.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusCreated, "user registered", userResponseFrom(user))
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	fieldErrors := map[string]string{}
	if !emailPattern.MatchString(req.Email) {
		fieldErrors["email"] = "must be a valid email address"
	}
	if req.Password == "" {
		fieldErrors["password"] = "must not be blank"
	}
	if len(fieldErrors) > 0 {
		writeValidationFailure(c, fieldErrors)
		return
	}

	result, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "login successful", loginResponse{
		Token:     result.Token,
		TokenType: result.TokenType,
		Email:     result.Email,
	})
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidationFailure(c, map[string]string{"id": "must be a positive integer"})
		return
	}
	user, err := s.users.Delete(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "user deleted", userResponseFrom(user))
}

func (s *Server) handleExportUsers(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=UTF-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=users_export_%s.csv",
		time.Now().Format("20060102_150405")))
	c.Status(http.StatusOK)
	if _, err := s.users.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		s.logger.Error("user export failed", "error", err)
	}
}
