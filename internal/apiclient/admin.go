package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
)

type departmentBody struct {
	Name string `json:"name"`
}

// ListDepartments returns all departments.
func (c *Client) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	if _, err := c.do(c.request(ctx), http.MethodGet, "/admin/departments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDepartment adds a department.
func (c *Client) CreateDepartment(ctx context.Context, name string) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(departmentBody{Name: name})
	_, err := c.do(req, http.MethodPost, "/admin/departments", nil)
	return err
}

// UpdateDepartment renames a department.
func (c *Client) UpdateDepartment(ctx context.Context, id domain.ID, name string) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").
		SetPathParam("id", id.String()).SetBody(departmentBody{Name: name})
	_, err := c.do(req, http.MethodPut, "/admin/departments/{id}", nil)
	return err
}

// DeleteDepartment removes a department.
func (c *Client) DeleteDepartment(ctx context.Context, id domain.ID) error {
	req := c.request(ctx).SetPathParam("id", id.String())
	_, err := c.do(req, http.MethodDelete, "/admin/departments/{id}", nil)
	return err
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if _, err := c.do(c.request(ctx), http.MethodGet, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser adds an account.
func (c *Client) CreateUser(ctx context.Context, u domain.NewUser) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(u)
	_, err := c.do(req, http.MethodPost, "/admin/users", nil)
	return err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id domain.ID) error {
	req := c.request(ctx).SetPathParam("id", id.String())
	_, err := c.do(req, http.MethodDelete, "/admin/users/{id}", nil)
	return err
}

type resetPasswordBody struct {
	NewPassword string `json:"newPassword"`
}

// ResetPassword sets a new password for an account.
func (c *Client) ResetPassword(ctx context.Context, id domain.ID, newPassword string) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").
		SetPathParam("id", id.String()).SetBody(resetPasswordBody{NewPassword: newPassword})
	_, err := c.do(req, http.MethodPut, "/admin/users/{id}/reset-password", nil)
	return err
}

// BulkUploadUsers sends a spreadsheet of accounts as multipart field "file".
func (c *Client) BulkUploadUsers(ctx context.Context, fileName string, r io.Reader) (*domain.BulkUploadResult, error) {
	var out domain.BulkUploadResult
	req := c.request(ctx).SetFileReader("file", fileName, r)
	if _, err := c.do(req, http.MethodPost, "/admin/users/bulk-upload", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UsersInDepartment lists users in the caller's own department.
func (c *Client) UsersInDepartment(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if _, err := c.do(c.request(ctx), http.MethodGet, "/filters/users-in-department", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UsersByDepartment lists users of a given department.
func (c *Client) UsersByDepartment(ctx context.Context, departmentID domain.ID) ([]domain.User, error) {
	var out []domain.User
	req := c.request(ctx).SetPathParam("id", departmentID.String())
	if _, err := c.do(req, http.MethodGet, "/filters/users-by-department/{id}", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Backup downloads a JSON snapshot of all data.
func (c *Client) Backup(ctx context.Context) ([]byte, error) {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(map[string]any{})
	resp, err := c.do(req, http.MethodPost, "/admin/backup", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// NewYear archives the current school year's forms on the server. Irreversible.
func (c *Client) NewYear(ctx context.Context) error {
	_, err := c.do(c.request(ctx), http.MethodPost, "/admin/new-year", nil)
	return err
}
