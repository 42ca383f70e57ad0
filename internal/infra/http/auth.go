package http

import (
	"net/http"
	"strings"

	"staffd/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	principalContextKey = "principal"
	requestIDHeader     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// authenticate is the request filter. Bypass paths and preflight requests
// skip token handling entirely. A missing Authorization header passes the
// request through anonymously so public handlers still work; a present but
// invalid token aborts with the typed failure.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		if c.Request.Method == http.MethodOptions || s.shouldBypass(c.Request.URL.Path) {
			c.Next()
			return
		}
		if _, ok := c.Get(principalContextKey); ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}
		token := header[len(bearerPrefix):]

		principal, err := s.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.abortAuthFailure(c, requestID, err)
			return
		}
		c.Set(principalContextKey, principal)
		if s.cfg.AuthDetailedLogging {
			s.logger.Debug("request authenticated",
				"request_id", requestID, "path", c.Request.URL.Path, "subject", principal.Email)
		}
		c.Next()
	}
}

func (s *Server) shouldBypass(path string) bool {
	for _, pattern := range s.cfg.AuthBypassPaths {
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if strings.HasPrefix(path, prefix+"/") || path == prefix {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}

func (s *Server) abortAuthFailure(c *gin.Context, requestID string, err error) {
	authErr, ok := domain.AsAuthError(err)
	if !ok {
		authErr = domain.WrapAuthError(domain.CodeInternal,
			http.StatusInternalServerError, "authentication error", err)
	}
	status := authErr.Status
	if status == 0 {
		status = http.StatusUnauthorized
	}
	s.logger.Warn("authentication failed",
		"request_id", requestID, "path", c.Request.URL.Path, "code", authErr.Code)
	writeErrorCode(c, status, authErr.Code, authErr.Message)
	c.Abort()
}

// authorize gates a route on the authenticated principal holding one of the
// given roles. No roles means any authenticated principal.
func (s *Server) authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := principalFrom(c)
		err := s.authorizer.Require(c.Request.Context(), principal, domain.Requirement{AnyOf: roles})
		if err != nil {
			authErr, ok := domain.AsAuthError(err)
			if !ok {
				authErr = domain.WrapAuthError(domain.CodeInternal,
					http.StatusInternalServerError, "authorization error", err)
			}
			writeErrorCode(c, authErr.Status, authErr.Code, authErr.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) (domain.Principal, bool) {
	raw, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := raw.(domain.Principal)
	return principal, ok
}

// ensureRequestID echoes the caller's id or mints a short one.
func ensureRequestID(c *gin.Context) string {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()[:8]
	}
	c.Header(requestIDHeader, id)
	return id
}
