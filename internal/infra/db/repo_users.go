package db

import (
	"context"
	"errors"

	"staffd/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if r.db == nil {
		return domain.User{}, errDBUnavailable
	}
	model := userModelFrom(user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	if r.db == nil {
		return domain.User{}, errDBUnavailable
	}
	model := userModelFrom(user)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	if r.db == nil {
		return domain.User{}, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if r.db == nil {
		return domain.User{}, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

// FindActiveByEmail is the authentication lookup: inactive or soft-deleted
// users are reported as not found, never returned.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (domain.User, error) {
	if r.db == nil {
		return domain.User{}, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ? AND is_deleted = ?", email, true, false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

// ListPage returns a page of users ordered by id ascending, for export.
func (r *UserRepository) ListPage(ctx context.Context, page, size int) ([]domain.User, bool, error) {
	if r.db == nil {
		return nil, false, errDBUnavailable
	}
	var models []UserModel
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(page * size).
		Limit(size + 1).
		Find(&models).Error
	if err != nil {
		return nil, false, err
	}
	hasNext := len(models) > size
	if hasNext {
		models = models[:size]
	}
	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.toDomain())
	}
	return users, hasNext, nil
}
