package usecase

import (
	"context"
	"sort"
	"sync"

	"staffd/internal/domain"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindActiveByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.Active && !user.Deleted {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) ListPage(_ context.Context, page, size int) ([]domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := page * size
	if start >= len(all) {
		return nil, false, nil
	}
	end := start + size
	hasNext := end < len(all)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], hasNext, nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	nextID    int64
	employees map[int64]domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]domain.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee domain.Employee) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	employee.ID = r.nextID
	employee.Code = domain.EmployeeCode(employee.CreatedAt.Year(), employee.ID)
	r.employees[employee.ID] = employee
	return employee, nil
}

func (r *fakeEmployeeRepo) Save(_ context.Context, employee domain.Employee) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[employee.ID] = employee
	return employee, nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id int64) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[id]
	if !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return employee, nil
}

func (r *fakeEmployeeRepo) FindByUserID(_ context.Context, userID int64) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.employees {
		if employee.UserID == userID {
			return employee, nil
		}
	}
	return domain.Employee{}, domain.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.employees {
		if employee.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmployeeRepo) ExistsByEmailExcluding(_ context.Context, email string, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.employees {
		if employee.Email == email && employee.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmployeeRepo) Search(_ context.Context, filter domain.EmployeeFilter, page domain.PageRequest) (domain.Page[domain.Employee], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.Employee, 0)
	for _, e := range r.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Active != nil && e.Active != *filter.Active {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	start := page.Page * page.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return domain.Page[domain.Employee]{
		Content:       matched[start:end],
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (r *fakeEmployeeRepo) ListPage(_ context.Context, page, size int) ([]domain.Employee, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		all = append(all, employee)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := page * size
	if start >= len(all) {
		return nil, false, nil
	}
	end := start + size
	hasNext := end < len(all)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], hasNext, nil
}

// fakeHasher keeps passwords in clear text so assertions stay simple.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }

func (fakeHasher) Verify(plain, hash string) bool { return "hash:"+plain == hash }
