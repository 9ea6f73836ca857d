// Package apiclient talks to the remote loan-tracking REST API on behalf of
// the signed-in browser.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/config"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// Client wraps a resty client configured for the API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a client. Requests are never retried.
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	httpClient.OnBeforeRequest(attachCredential)

	return &Client{http: httpClient, logger: logger.With(zap.String("component", "apiclient"))}
}

// attachCredential copies the stored credential into the Authorization header.
func attachCredential(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()
	st := session.FromContext(ctx)
	if st == nil {
		return nil
	}
	token, err := st.Get(ctx, session.KeyCredential)
	if err != nil || token == "" {
		return nil
	}
	r.SetAuthToken(token)
	return nil
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ServerMessage returns the message the API sent with err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// IsUnauthorized reports whether the API rejected the credential.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// do executes req and decodes a JSON body into out when out is non-nil.
func (c *Client) do(req *resty.Request, method, path string, out any) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode(), Message: extractMessage(resp.Body())}
		c.logger.Info("api request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message))
		return resp, apiErr
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return resp, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	c.logger.Debug("api request completed", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode()))
	return resp, nil
}

// extractMessage pulls a human-readable message from an error body. The API
// uses {"error": "..."}, {"error": {"message": "..."}} or {"message": "..."}.
func extractMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Error) > 0 {
		var s string
		if err := json.Unmarshal(payload.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return payload.Message
}
