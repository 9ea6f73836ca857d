// Package notify carries one-shot user notices across a redirect.
package notify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
	apperrors "github.com/Python-viet/quan-ly-thiet-bi-frontend/pkg/util"
)

// Kind is the notice severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notice is a message shown once at the top of the next page.
type Notice struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

func Success(text string) Notice { return Notice{Kind: KindSuccess, Text: text} }
func Warning(text string) Notice { return Notice{Kind: KindWarning, Text: text} }
func Info(text string) Notice    { return Notice{Kind: KindInfo, Text: text} }

// FromError turns any failure into an error notice. The server's own message
// wins, otherwise fallback is used.
func FromError(err error, fallback string) Notice {
	if msg, ok := apiclient.ServerMessage(err); ok {
		return Notice{Kind: KindError, Text: msg}
	}
	var de *apperrors.DomainError
	if errors.As(err, &de) && de.Code == "VALIDATION_FAILED" {
		return Notice{Kind: KindError, Text: de.Message}
	}
	return Notice{Kind: KindError, Text: fallback}
}

// Push stores n in the notice slot, replacing any pending one.
func Push(ctx context.Context, st session.Store, n Notice) error {
	if st == nil {
		return nil
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return st.Set(ctx, session.KeyNotice, string(raw))
}

// Pop returns and clears the pending notice.
func Pop(ctx context.Context, st session.Store) (*Notice, error) {
	if st == nil {
		return nil, nil
	}
	raw, err := st.Get(ctx, session.KeyNotice)
	if errors.Is(err, session.ErrNotFound) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := st.Clear(ctx, session.KeyNotice); err != nil {
		return nil, err
	}
	var n Notice
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, nil
	}
	return &n, nil
}
