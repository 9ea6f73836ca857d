package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
)

// Export formats.
const (
	ExportExcel = "excel"
	ExportPDF   = "pdf"
)

// Statistics returns aggregates for a month. Empty department or user ids are
// left out of the query.
func (c *Client) Statistics(ctx context.Context, q domain.StatsQuery) (*domain.Statistics, error) {
	var out domain.Statistics
	req := c.request(ctx).
		SetQueryParam("year", strconv.Itoa(q.Year)).
		SetQueryParam("month", strconv.Itoa(q.Month))
	if !q.DepartmentID.IsZero() {
		req.SetQueryParam("departmentId", q.DepartmentID.String())
	}
	if !q.UserID.IsZero() {
		req.SetQueryParam("userId", q.UserID.String())
	}
	if _, err := c.do(req, http.MethodGet, "/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads a report. userId is always sent, empty when unset.
func (c *Client) Export(ctx context.Context, kind string, q domain.StatsQuery) ([]byte, error) {
	if kind != ExportExcel && kind != ExportPDF {
		return nil, fmt.Errorf("unsupported export kind %q", kind)
	}
	req := c.request(ctx).
		SetPathParam("kind", kind).
		SetQueryParam("year", strconv.Itoa(q.Year)).
		SetQueryParam("month", strconv.Itoa(q.Month)).
		SetQueryParam("departmentId", q.DepartmentID.String()).
		SetQueryParam("userId", q.UserID.String())
	resp, err := c.do(req, http.MethodGet, "/export/{kind}", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// ExportFileName names a downloaded report.
func ExportFileName(kind string, month, year int) string {
	ext := "pdf"
	if kind == ExportExcel {
		ext = "xlsx"
	}
	return fmt.Sprintf("BaoCao_%s_%d-%d.%s", kind, month, year, ext)
}
