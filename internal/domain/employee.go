package domain

import (
	"fmt"
	"time"
)

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "ACTIVE"
	EmployeeOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeTerminated EmployeeStatus = "TERMINATED"
)

func ValidEmployeeStatus(s EmployeeStatus) bool {
	switch s {
	case EmployeeActive, EmployeeOnLeave, EmployeeTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID            int64
	Code          string
	FirstName     string
	LastName      string
	Email         string
	Department    string
	Status        EmployeeStatus
	DateOfJoining time.Time
	Active        bool
	Deleted       bool
	UserID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeCode derives the public employee code from the hire year and the
// storage-assigned id.
func EmployeeCode(year int, id int64) string {
	return fmt.Sprintf("EMP-%d-%06d", year, id)
}

// EmployeeFilter narrows a paginated employee search. Name matches first or
// last name, case-insensitive contains. Nil pointer fields are not applied.
type EmployeeFilter struct {
	Name       string
	Status     *EmployeeStatus
	Department string
	Active     *bool
}

type PageRequest struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}
