package usecase

import (
	"context"

	"staffd/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindActiveByEmail(ctx context.Context, email string) (domain.User, error)
	ListPage(ctx context.Context, page, size int) ([]domain.User, bool, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	Save(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	FindByID(ctx context.Context, id int64) (domain.Employee, error)
	FindByUserID(ctx context.Context, userID int64) (domain.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcluding(ctx context.Context, email string, id int64) (bool, error)
	Search(ctx context.Context, filter domain.EmployeeFilter, page domain.PageRequest) (domain.Page[domain.Employee], error)
	ListPage(ctx context.Context, page, size int) ([]domain.Employee, bool, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
