package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"staffd/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	Token     string
	TokenType string
	Email     string
}

type UserService struct {
	Users     UserRepository
	Employees EmployeeRepository
	Hasher    PasswordHasher
	Codec     domain.TokenCodec
	TokenTTL  time.Duration
	BatchSize int
	Logger    *slog.Logger
	now       func() time.Time
}

func NewUserService(users UserRepository, employees EmployeeRepository, hasher PasswordHasher,
	codec domain.TokenCodec, tokenTTL time.Duration, batchSize int, logger *slog.Logger) *UserService {
	if batchSize <= 0 {
		batchSize = 500
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		Users:     users,
		Employees: employees,
		Hasher:    hasher,
		Codec:     codec,
		TokenTTL:  tokenTTL,
		BatchSize: batchSize,
		Logger:    logger,
		now:       time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if _, err := s.Users.FindByEmail(ctx, in.Email); err == nil {
		s.Logger.Info("user already exists", "email", in.Email)
		return domain.User{}, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	user := domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
		Deleted:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.Users.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	s.Logger.Info("user registered", "user_id", created.ID, "email", created.Email)
	return created, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.Users.FindActiveByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if !s.Hasher.Verify(password, user.PasswordHash) {
		s.Logger.Warn("login failed", "email", email)
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	token, err := s.Codec.Encode(user.Principal(), s.TokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	s.Logger.Info("user logged in", "email", email)
	return LoginResult{Token: token, TokenType: "Bearer", Email: user.Email}, nil
}

// Delete soft-deletes the user and, when one is linked, its employee record.
func (s *UserService) Delete(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.Deleted = true
	user.Active = false
	user.UpdatedAt = s.now()
	updated, err := s.Users.Save(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	if employee, err := s.Employees.FindByUserID(ctx, id); err == nil {
		employee.Deleted = true
		employee.Active = false
		employee.UpdatedAt = s.now()
		if _, err := s.Employees.Save(ctx, employee); err != nil {
			return domain.User{}, err
		}
	} else if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return domain.User{}, err
	}
	s.Logger.Info("user soft-deleted", "user_id", id)
	return updated, nil
}

// ExportCSV streams all users in id order as CSV, page by page. The leading
// BOM and CRLF records keep the output Excel-friendly.
func (s *UserService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write([]string{"User ID", "Email", "Role", "Is Active", "Is Deleted", "Created At", "Updated At"}); err != nil {
		return 0, err
	}

	exported := 0
	for page := 0; ; page++ {
		users, hasNext, err := s.Users.ListPage(ctx, page, s.BatchSize)
		if err != nil {
			return exported, err
		}
		for _, u := range users {
			record := []string{
				strconv.FormatInt(u.ID, 10),
				u.Email,
				u.Role,
				strconv.FormatBool(u.Active),
				strconv.FormatBool(u.Deleted),
				u.CreatedAt.Format(timestampLayout),
				u.UpdatedAt.Format(timestampLayout),
			}
			if err := cw.Write(record); err != nil {
				return exported, err
			}
			exported++
		}
		if !hasNext {
			break
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return exported, err
	}
	s.Logger.Info("user csv export completed", "total", exported)
	return exported, nil
}
