package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"staffd/internal/config"
	"staffd/internal/domain"
	"staffd/internal/infra/auth/jwt"
	"staffd/internal/infra/auth/opa"
	"staffd/internal/infra/auth/rbac"
	"staffd/internal/infra/crypto"
	"staffd/internal/infra/db"
	"staffd/internal/infra/ratelimit"
	"staffd/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg    config.Config
	store  *db.Store
	logger *slog.Logger
	r      *gin.Engine

	users     *usecase.UserService
	employees *usecase.EmployeeService

	authenticator domain.Authenticator
	authorizer    domain.Authorizer
	authInitErr   error

	rateLimiter         domain.RateLimiter
	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool
}

func NewServer(cfg config.Config, store *db.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, logger: logger, r: r}
	s.initDeps()
	s.r.Use(s.authenticate())
	s.routes()
	return s
}

// ServerDeps lets tests assemble a server from fakes.
type ServerDeps struct {
	Users         *usecase.UserService
	Employees     *usecase.EmployeeService
	Authenticator domain.Authenticator
	Authorizer    domain.Authorizer
	RateLimiter   domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		r:             r,
		users:         deps.Users,
		employees:     deps.Employees,
		authenticator: deps.Authenticator,
		authorizer:    deps.Authorizer,
	}
	s.initRateLimit(deps.RateLimiter)
	if s.authorizer == nil {
		s.authorizer = rbac.NewAuthorizer()
	}
	s.r.Use(s.authenticate())
	s.routes()
	return s
}

func (s *Server) initDeps() {
	codec, err := jwt.NewCodec(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.logger)
	if err != nil {
		s.authInitErr = err
		return
	}
	if s.store == nil || s.store.DB == nil {
		s.authInitErr = errors.New("database store is required")
		return
	}

	userRepo := db.NewUserRepository(s.store.DB)
	employeeRepo := db.NewEmployeeRepository(s.store.DB)

	lookup := &usecase.IdentityLookup{Users: userRepo}
	s.authenticator = &usecase.Authenticator{
		Codec:     codec,
		Validator: jwt.NewValidator(codec),
		Lookup:    lookup,
	}

	switch s.cfg.AuthzMode {
	case "", "table":
		s.authorizer = rbac.NewAuthorizer()
	case "opa":
		engine, err := opa.NewEngine(context.Background(), s.cfg.AuthzPolicyPath)
		if err != nil {
			s.authInitErr = err
			return
		}
		s.authorizer = engine
	default:
		s.authInitErr = fmt.Errorf("unsupported authz mode %q", s.cfg.AuthzMode)
		return
	}

	hasher := crypto.NewPasswordHasher()
	s.users = usecase.NewUserService(userRepo, employeeRepo, hasher, codec,
		s.cfg.TokenTTL(), s.cfg.ExportBatchSize, s.logger)
	s.employees = usecase.NewEmployeeService(employeeRepo, userRepo,
		s.cfg.ExportBatchSize, s.logger)

	s.initRateLimit(nil)
}

func (s *Server) initRateLimit(override domain.RateLimiter) {
	if override != nil {
		s.rateLimiter = override
	}
	if s.rateLimiter == nil && s.cfg.LoginRateLimitRequests > 0 {
		if s.cfg.RedisAddr != "" {
			if limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil); err == nil {
				s.rateLimiter = limiter
			}
		}
		if s.rateLimiter == nil {
			s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
				MaxKeys: s.cfg.RateLimitMaxKeys,
			})
		}
	}
	s.rateLimitRequests = s.cfg.LoginRateLimitRequests
	s.rateLimitWindow = s.cfg.LoginRateLimitWindow()
	s.rateLimitFailClosed = s.cfg.RateLimitFailClosed
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		mode := "no-db"
		if s.store != nil && s.store.DB != nil {
			mode = "db"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
	})

	users := s.r.Group("/users")
	{
		users.POST("/register", s.handleRegister)
		users.POST("/login", s.loginRateLimit(), s.handleLogin)
		users.DELETE("/:id", s.authorize(domain.RoleAdmin), s.handleDeleteUser)
		users.GET("/export", s.authorize(domain.RoleAdmin), s.handleExportUsers)
	}

	employees := s.r.Group("/employee")
	{
		employees.POST("", s.authorize(), s.handleAddEmployee)
		employees.GET("", s.authorize(domain.RoleAdmin, domain.RoleUser), s.handleLoggedInEmployee)
		employees.GET("/admin", s.authorize(domain.RoleAdmin), s.handleSearchEmployees)
		employees.PUT("/:id", s.authorize(), s.handleUpdateEmployee)
		employees.DELETE("/:id", s.authorize(domain.RoleAdmin), s.handleDeleteEmployee)
		employees.GET("/export", s.authorize(domain.RoleAdmin), s.handleExportEmployees)
	}

	s.r.NoRoute(func(c *gin.Context) {
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
}

func (s *Server) Run() error {
	if s.authInitErr != nil {
		return s.authInitErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}
