package db

import (
	"context"
	"errors"

	"staffd/internal/domain"

	"gorm.io/gorm"
)

// sortColumns whitelists API sort keys against real columns; anything else
// falls back to created_at.
var sortColumns = map[string]string{
	"id":            "id",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"firstName":     "first_name",
	"lastName":      "last_name",
	"email":         "email",
	"department":    "department",
	"status":        "status",
	"dateOfJoining": "date_of_joining",
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts the employee and assigns its code in one transaction. The
// code needs the storage-assigned id, so a failure after the insert must not
// leave a codeless row behind.
func (r *EmployeeRepository) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	if r.db == nil {
		return domain.Employee{}, errDBUnavailable
	}
	model := employeeModelFrom(employee)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		model.EmployeeCode = domain.EmployeeCode(model.CreatedAt.Year(), model.ID)
		return tx.Model(&model).Update("employee_code", model.EmployeeCode).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Employee{}, domain.ErrEmployeeExists
		}
		return domain.Employee{}, err
	}
	return model.toDomain(), nil
}

func (r *EmployeeRepository) Save(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	if r.db == nil {
		return domain.Employee{}, errDBUnavailable
	}
	model := employeeModelFrom(employee)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.Employee{}, err
	}
	return model.toDomain(), nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	if r.db == nil {
		return domain.Employee{}, errDBUnavailable
	}
	var model EmployeeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Employee{}, domain.ErrEmployeeNotFound
		}
		return domain.Employee{}, err
	}
	return model.toDomain(), nil
}

func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID int64) (domain.Employee, error) {
	if r.db == nil {
		return domain.Employee{}, errDBUnavailable
	}
	var model EmployeeModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Employee{}, domain.ErrEmployeeNotFound
		}
		return domain.Employee{}, err
	}
	return model.toDomain(), nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.db == nil {
		return false, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&EmployeeModel{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) ExistsByEmailExcluding(ctx context.Context, email string, id int64) (bool, error) {
	if r.db == nil {
		return false, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&EmployeeModel{}).
		Where("email = ? AND id <> ?", email, id).Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) Search(ctx context.Context, filter domain.EmployeeFilter, page domain.PageRequest) (domain.Page[domain.Employee], error) {
	if r.db == nil {
		return domain.Page[domain.Employee]{}, errDBUnavailable
	}
	query := r.db.WithContext(ctx).Model(&EmployeeModel{})
	if filter.Name != "" {
		pattern := "%" + filter.Name + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return domain.Page[domain.Employee]{}, err
	}

	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = "created_at"
	}
	order := column + " ASC"
	if page.Desc {
		order = column + " DESC"
	}

	var models []EmployeeModel
	err := query.Order(order).
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return domain.Page[domain.Employee]{}, err
	}

	content := make([]domain.Employee, 0, len(models))
	for _, m := range models {
		content = append(content, m.toDomain())
	}
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return domain.Page[domain.Employee]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// ListPage returns a page of employees ordered by id ascending, for export.
func (r *EmployeeRepository) ListPage(ctx context.Context, page, size int) ([]domain.Employee, bool, error) {
	if r.db == nil {
		return nil, false, errDBUnavailable
	}
	var models []EmployeeModel
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
	employees := make([]domain.Employee, 0, len(models))
	for _, m := range models {
		employees = append(employees, m.toDomain())
	}
	return employees, hasNext, nil
}
