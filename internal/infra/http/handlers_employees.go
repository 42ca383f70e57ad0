package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"staffd/internal/domain"
	"staffd/internal/usecase"

	"github.com/gin-gonic/gin"
)

type employeeRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Status        string `json:"status"`
	DateOfJoining string `json:"dateOfJoining"`
}

type employeeResponse struct {
	ID            int64  `json:"id"`
	Code          string `json:"employeeCode"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Status        string `json:"status"`
	DateOfJoining string `json:"dateOfJoining"`
	IsActive      bool   `json:"isActive"`
}

type employeePageResponse struct {
	Content       []employeeResponse `json:"content"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
}

func employeeResponseFrom(e domain.Employee) employeeResponse {
	return employeeResponse{
		ID:            e.ID,
		Code:          e.Code,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Department:    e.Department,
		Status:        string(e.Status),
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
		IsActive:      e.Active,
	}
}

func (r employeeRequest) validate() (usecase.EmployeeInput, map[string]string) {
	fieldErrors := map[string]string{}
	if r.FirstName == "" || len(r.FirstName) > 50 {
		fieldErrors["firstName"] = "must be 1-50 characters"
	}
	if r.LastName == "" || len(r.LastName) > 50 {
		fieldErrors["lastName"] = "must be 1-50 characters"
	}
	if !emailPattern.MatchString(r.Email) {
		fieldErrors["email"] = "must be a valid email address"
	}
	if r.Department == "" || len(r.Department) > 50 {
		fieldErrors["department"] = "must be 1-50 characters"
	}
	status := domain.EmployeeStatus(r.Status)
	if !domain.ValidEmployeeStatus(status) {
		fieldErrors["status"] = "must be ACTIVE, ON_LEAVE or TERMINATED"
	}
	joined, err := time.Parse("2006-01-02", r.DateOfJoining)
	if err != nil {
		fieldErrors["dateOfJoining"] = "must be a date in YYYY-MM-DD format"
	}
	if len(fieldErrors) > 0 {
		return usecase.EmployeeInput{}, fieldErrors
	}
	return usecase.EmployeeInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Department:    r.Department,
		Status:        status,
		DateOfJoining: joined,
	}, nil
}

func (s *Server) handleAddEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	in, fieldErrors := req.validate()
	if fieldErrors != nil {
		writeValidationFailure(c, fieldErrors)
		return
	}
	principal, _ := principalFrom(c)
	employee, err := s.employees.Add(c.Request.Context(), principal, in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusCreated, "employee added", employeeResponseFrom(employee))
}

func (s *Server) handleUpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidationFailure(c, map[string]string{"id": "must be a positive integer"})
		return
	}
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	in, fieldErrors := req.validate()
	if fieldErrors != nil {
		writeValidationFailure(c, fieldErrors)
		return
	}
	employee, err := s.employees.Update(c.Request.Context(), id, in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "employee updated", employeeResponseFrom(employee))
}

func (s *Server) handleDeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidationFailure(c, map[string]string{"id": "must be a positive integer"})
		return
	}
	employee, err := s.employees.Delete(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "employee deleted", employeeResponseFrom(employee))
}

func (s *Server) handleLoggedInEmployee(c *gin.Context) {
	principal, _ := principalFrom(c)
	employee, err := s.employees.LoggedIn(c.Request.Context(), principal)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "employee found", employeeResponseFrom(employee))
}

func (s *Server) handleSearchEmployees(c *gin.Context) {
	filter, page, fieldErrors := parseSearchQuery(c)
	if fieldErrors != nil {
		writeValidationFailure(c, fieldErrors)
		return
	}
	result, err := s.employees.Search(c.Request.Context(), filter, page)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	content := make([]employeeResponse, 0, len(result.Content))
	for _, e := range result.Content {
		content = append(content, employeeResponseFrom(e))
	}
	writeSuccess(c, http.StatusOK, "employees found", employeePageResponse{
		Content:       content,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
	})
}

func parseSearchQuery(c *gin.Context) (domain.EmployeeFilter, domain.PageRequest, map[string]string) {
	fieldErrors := map[string]string{}

	page := 0
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			fieldErrors["page"] = "must be a non-negative integer"
		} else {
			page = parsed
		}
	}
	size := 10
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			fieldErrors["size"] = "must be between 1 and 100"
		} else {
			size = parsed
		}
	}

	filter := domain.EmployeeFilter{
		Name:       c.Query("name"),
		Department: c.Query("department"),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.EmployeeStatus(raw)
		if !domain.ValidEmployeeStatus(status) {
			fieldErrors["status"] = "must be ACTIVE, ON_LEAVE or TERMINATED"
		} else {
			filter.Status = &status
		}
	}
	active := true
	if raw := c.Query("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrors["isActive"] = "must be true or false"
		} else {
			active = parsed
		}
	}
	filter.Active = &active

	if len(fieldErrors) > 0 {
		return domain.EmployeeFilter{}, domain.PageRequest{}, fieldErrors
	}

	sortBy := c.Query("sortBy")
	if sortBy == "" {
		sortBy = "createdAt"
	}
	return filter, domain.PageRequest{
		Page:   page,
		Size:   size,
		SortBy: sortBy,
		Desc:   c.Query("sortDir") != "asc",
	}, nil
}

func (s *Server) handleExportEmployees(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=UTF-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=employees_export_%s.csv",
		time.Now().Format("20060102_150405")))
	c.Status(http.StatusOK)
	if _, err := s.employees.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		s.logger.Error("employee export failed", "error", err)
	}
}
