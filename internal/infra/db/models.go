package db

import (
	"time"

	"staffd/internal/domain"
)

type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `gorm:"column:password;size:255;not null"`
	Role         string    `gorm:"size:20;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	IsDeleted    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type EmployeeModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeCode  string    `gorm:"uniqueIndex;size:20"`
	FirstName     string    `gorm:"size:50;not null"`
	LastName      string    `gorm:"size:50;not null"`
	Email         string    `gorm:"uniqueIndex;size:100;not null"`
	Department    string    `gorm:"size:100;not null"`
	Status        string    `gorm:"size:20;not null"`
	DateOfJoining time.Time `gorm:"not null"`
	IsActive      bool      `gorm:"not null;default:true"`
	IsDeleted     bool      `gorm:"not null;default:false"`
	UserID        int64     `gorm:"index;not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (EmployeeModel) TableName() string { return "employee" }

func (m UserModel) toDomain() domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Active:       m.IsActive,
		Deleted:      m.IsDeleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userModelFrom(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.Active,
		IsDeleted:    u.Deleted,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m EmployeeModel) toDomain() domain.Employee {
	return domain.Employee{
		ID:            m.ID,
		Code:          m.EmployeeCode,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		Department:    m.Department,
		Status:        domain.EmployeeStatus(m.Status),
		DateOfJoining: m.DateOfJoining,
		Active:        m.IsActive,
		Deleted:       m.IsDeleted,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func employeeModelFrom(e domain.Employee) EmployeeModel {
	return EmployeeModel{
		ID:            e.ID,
		EmployeeCode:  e.Code,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Department:    e.Department,
		Status:        string(e.Status),
		DateOfJoining: e.DateOfJoining,
		IsActive:      e.Active,
		IsDeleted:     e.Deleted,
		UserID:        e.UserID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
