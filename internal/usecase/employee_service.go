package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"staffd/internal/domain"
)

const dateLayout = "2006-01-02"

type EmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Department    string
	Status        domain.EmployeeStatus
	DateOfJoining time.Time
}

type EmployeeService struct {
	Employees EmployeeRepository
	Users     UserRepository
	BatchSize int
	Logger    *slog.Logger
	now       func() time.Time
}

func NewEmployeeService(employees EmployeeRepository, users UserRepository,
	batchSize int, logger *slog.Logger) *EmployeeService {
	if batchSize <= 0 {
		batchSize = 500
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeService{
		Employees: employees,
		Users:     users,
		BatchSize: batchSize,
		Logger:    logger,
		now:       time.Now,
	}
}

// Add creates an employee record owned by the authenticated principal. The
// repository assigns the employee code atomically with the insert.
func (s *EmployeeService) Add(ctx context.Context, principal domain.Principal, in EmployeeInput) (domain.Employee, error) {
	user, err := s.Users.FindActiveByEmail(ctx, principal.Email)
	if err != nil {
		return domain.Employee{}, err
	}
	exists, err := s.Employees.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return domain.Employee{}, err
	}
	if exists {
		return domain.Employee{}, domain.ErrEmployeeExists
	}

	now := s.now()
	employee := domain.Employee{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Department:    in.Department,
		Status:        in.Status,
		DateOfJoining: in.DateOfJoining,
		Active:        true,
		Deleted:       false,
		UserID:        user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := s.Employees.Create(ctx, employee)
	if err != nil {
		return domain.Employee{}, err
	}
	s.Logger.Info("employee added", "employee_id", created.ID, "code", created.Code)
	return created, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, in EmployeeInput) (domain.Employee, error) {
	employee, err := s.Employees.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	if employee.Deleted || !employee.Active {
		return domain.Employee{}, domain.ErrEmployeeInactive
	}
	if in.Email != employee.Email {
		taken, err := s.Employees.ExistsByEmailExcluding(ctx, in.Email, id)
		if err != nil {
			return domain.Employee{}, err
		}
		if taken {
			return domain.Employee{}, domain.ErrEmployeeExists
		}
	}

	employee.FirstName = in.FirstName
	employee.LastName = in.LastName
	employee.Email = in.Email
	employee.Department = in.Department
	employee.Status = in.Status
	employee.DateOfJoining = in.DateOfJoining
	employee.UpdatedAt = s.now()
	updated, err := s.Employees.Save(ctx, employee)
	if err != nil {
		return domain.Employee{}, err
	}
	s.Logger.Info("employee updated", "employee_id", id)
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) (domain.Employee, error) {
	employee, err := s.Employees.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	employee.Deleted = true
	employee.Active = false
	employee.UpdatedAt = s.now()
	updated, err := s.Employees.Save(ctx, employee)
	if err != nil {
		return domain.Employee{}, err
	}
	s.Logger.Info("employee soft-deleted", "employee_id", id)
	return updated, nil
}

func (s *EmployeeService) Search(ctx context.Context, filter domain.EmployeeFilter, page domain.PageRequest) (domain.Page[domain.Employee], error) {
	return s.Employees.Search(ctx, filter, page)
}

// LoggedIn returns the employee record linked to the authenticated principal.
func (s *EmployeeService) LoggedIn(ctx context.Context, principal domain.Principal) (domain.Employee, error) {
	user, err := s.Users.FindActiveByEmail(ctx, principal.Email)
	if err != nil {
		return domain.Employee{}, err
	}
	employee, err := s.Employees.FindByUserID(ctx, user.ID)
	if err != nil {
		return domain.Employee{}, err
	}
	if employee.Deleted {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return employee, nil
}

// ExportCSV streams all employees in id order as CSV, page by page, joining
// each row with its owner's email.
func (s *EmployeeService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	header := []string{"Employee Code", "First Name", "Last Name", "Email",
		"Department", "Status", "Date of Joining", "Is Active", "User Email"}
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	exported := 0
	for page := 0; ; page++ {
		employees, hasNext, err := s.Employees.ListPage(ctx, page, s.BatchSize)
		if err != nil {
			return exported, err
		}
		for _, e := range employees {
			userEmail := ""
			if user, err := s.Users.FindByID(ctx, e.UserID); err == nil {
				userEmail = user.Email
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return exported, err
			}
			record := []string{
				e.Code,
				e.FirstName,
				e.LastName,
				e.Email,
				e.Department,
				string(e.Status),
				e.DateOfJoining.Format(dateLayout),
				fmt.Sprintf("%t", e.Active),
				userEmail,
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
	s.Logger.Info("employee csv export completed", "total", exported)
	return exported, nil
}
