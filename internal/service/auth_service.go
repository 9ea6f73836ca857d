package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
	apperrors "github.com/Python-viet/quan-ly-thiet-bi-frontend/pkg/util"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginInput is the submitted login form.
type LoginInput struct {
	Username string
	Password string
	Remember bool
}

// AuthService coordinates sign-in and sign-out for one browser scope.
type AuthService struct {
	api        Authenticator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthService builds the service. dispatcher may be nil.
func NewAuthService(api Authenticator, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, dispatcher: dispatcher, logger: logger}
}

// Login authenticates against the API and stores the credential in st. The
// remembered username is set when in.Remember is true and cleared otherwise.
func (s *AuthService) Login(ctx context.Context, st session.Store, scopeID string, in LoginInput) error {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return apperrors.NewValidationError("Vui lòng nhập tên đăng nhập!", map[string]any{"field": "username"})
	}
	if in.Password == "" {
		return apperrors.NewValidationError("Vui lòng nhập mật khẩu!", map[string]any{"field": "password"})
	}

	token, err := s.api.Login(ctx, in.Username, in.Password)
	if err != nil {
		s.publish(ctx, events.New(events.EventLoginFailed, scopeID, events.Actor{Username: in.Username},
			events.LoginFailedPayload{Username: in.Username, Reason: err.Error()}))
		return err
	}

	if err := st.Set(ctx, session.KeyCredential, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	if in.Remember {
		err = st.Set(ctx, session.KeyRememberedUser, in.Username)
	} else {
		err = st.Clear(ctx, session.KeyRememberedUser)
	}
	if err != nil {
		s.logger.Warn("remembered user update failed", zap.Error(err))
	}

	actor := events.Actor{Username: in.Username}
	if claims, err := session.DecodeCredential(token); err == nil {
		actor = events.ActorFrom(claims.User)
	}
	s.publish(ctx, events.New(events.EventLoginSucceeded, scopeID, actor, nil))
	return nil
}

// Logout removes the credential. The remembered username survives.
func (s *AuthService) Logout(ctx context.Context, st session.Store, scopeID string, who *domain.Identity) error {
	if err := st.Clear(ctx, session.KeyCredential); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.New(events.EventLoggedOut, scopeID, events.ActorFrom(who), nil))
	return nil
}

// RememberedUser returns the username saved by a previous "remember me" login.
func (s *AuthService) RememberedUser(ctx context.Context, st session.Store) (string, bool) {
	if st == nil {
		return "", false
	}
	v, err := st.Get(ctx, session.KeyRememberedUser)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
