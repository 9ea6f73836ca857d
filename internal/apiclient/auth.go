package apiclient

import (
	"context"
	"errors"
	"net/http"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges a username and password for a credential.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	req := c.request(ctx).SetHeader("Content-Type", "application/json").
		SetBody(LoginRequest{Username: username, Password: password})
	if _, err := c.do(req, http.MethodPost, "/auth/login", &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response carried no token")
	}
	return out.Token, nil
}
