package dto

import (
	"strconv"
	"strings"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	apperrors "github.com/Python-viet/quan-ly-thiet-bi-frontend/pkg/util"
)

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Remember string `form:"remember"`
}

// RememberChecked reports whether the "remember me" box was ticked.
func (r LoginRequest) RememberChecked() bool {
	return checked(r.Remember)
}

// CreateUserRequest is the new-account form.
type CreateUserRequest struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	FullName     string `form:"full_name"`
	RoleID       string `form:"role_id"`
	DepartmentID string `form:"department_id"`
}

// ToNewUser validates the form. Leaders and teachers must belong to a department.
func (r CreateUserRequest) ToNewUser() (domain.NewUser, error) {
	u := domain.NewUser{
		Username: strings.TrimSpace(r.Username),
		Password: r.Password,
		FullName: strings.TrimSpace(r.FullName),
	}
	if u.Username == "" {
		return u, apperrors.NewValidationError("Vui lòng nhập tên đăng nhập!", field("username"))
	}
	if u.Password == "" {
		return u, apperrors.NewValidationError("Vui lòng nhập mật khẩu!", field("password"))
	}
	if u.FullName == "" {
		return u, apperrors.NewValidationError("Vui lòng nhập họ và tên!", field("full_name"))
	}

	roleID, err := strconv.Atoi(strings.TrimSpace(r.RoleID))
	if err != nil || !validRoleID(roleID) {
		return u, apperrors.NewValidationError("Vui lòng chọn vai trò!", field("role_id"))
	}
	u.RoleID = roleID

	dept := strings.TrimSpace(r.DepartmentID)
	if dept != "" {
		id := domain.ID(dept)
		u.DepartmentID = &id
	}
	if domain.RoleRequiresDepartment(roleID) && u.DepartmentID == nil {
		return u, apperrors.NewValidationError("Vui lòng chọn tổ chuyên môn!", field("department_id"))
	}
	return u, nil
}

// ResetPasswordRequest is the password-reset form.
type ResetPasswordRequest struct {
	Password string `form:"password"`
}

// Validate checks the new password.
func (r ResetPasswordRequest) Validate() error {
	if r.Password == "" {
		return apperrors.NewValidationError("Vui lòng nhập mật khẩu mới!", field("password"))
	}
	return nil
}

// DepartmentRequest is the department create/rename form.
type DepartmentRequest struct {
	Name string `form:"name"`
}

// Validated returns the trimmed name.
func (r DepartmentRequest) Validated() (string, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "", apperrors.NewValidationError("Vui lòng nhập tên tổ chuyên môn!", field("name"))
	}
	return name, nil
}

func validRoleID(id int) bool {
	for _, opt := range domain.RoleOptions {
		if opt.ID == id {
			return true
		}
	}
	return false
}

func field(name string) map[string]any {
	return map[string]any{"field": name}
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
