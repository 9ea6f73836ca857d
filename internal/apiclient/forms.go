package apiclient

import (
	"context"
	"net/http"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
)

// FormFilter narrows the loan-form list.
type FormFilter struct {
	Search    string
	TeacherID domain.ID
}

// ListForms returns loan forms visible to the caller.
func (c *Client) ListForms(ctx context.Context, f FormFilter) ([]domain.LoanForm, error) {
	var out []domain.LoanForm
	req := c.request(ctx).SetQueryParam("search", f.Search)
	if !f.TeacherID.IsZero() {
		req.SetQueryParam("teacherId", f.TeacherID.String())
	}
	if _, err := c.do(req, http.MethodGet, "/forms", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateForm submits a new loan form.
func (c *Client) CreateForm(ctx context.Context, in domain.LoanFormInput) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(in)
	_, err := c.do(req, http.MethodPost, "/forms", nil)
	return err
}

// UpdateForm replaces a loan form.
func (c *Client) UpdateForm(ctx context.Context, id domain.ID, in domain.LoanFormInput) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").
		SetPathParam("id", id.String()).SetBody(in)
	_, err := c.do(req, http.MethodPut, "/forms/{id}", nil)
	return err
}

// DeleteForm removes a loan form.
func (c *Client) DeleteForm(ctx context.Context, id domain.ID) error {
	req := c.request(ctx).SetPathParam("id", id.String())
	_, err := c.do(req, http.MethodDelete, "/forms/{id}", nil)
	return err
}

// GetForm finds one form in the caller's list. The API has no single-form
// endpoint.
func (c *Client) GetForm(ctx context.Context, id domain.ID) (*domain.LoanForm, error) {
	forms, err := c.ListForms(ctx, FormFilter{})
	if err != nil {
		return nil, err
	}
	for i := range forms {
		if forms[i].ID == id {
			return &forms[i], nil
		}
	}
	return nil, &APIError{Status: http.StatusNotFound, Message: "Không tìm thấy phiếu mượn."}
}

// DashboardStats returns the role-specific dashboard widgets.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if _, err := c.do(c.request(ctx), http.MethodGet, "/dashboard/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
