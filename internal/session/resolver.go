package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
)

// Resolver turns the stored credential into an Identity. It keeps no state of
// its own; every call re-reads the store.
type Resolver struct {
	now        func() time.Time
	logger     *zap.Logger
	dispatcher events.Dispatcher
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithDispatcher publishes credential_expired events on purge.
func WithDispatcher(d events.Dispatcher) ResolverOption {
	return func(r *Resolver) { r.dispatcher = d }
}

// NewResolver builds a resolver.
func NewResolver(logger *zap.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the identity held by st, or false when there is none.
// An expired credential is removed from st. A malformed one is left alone.
func (r *Resolver) Resolve(ctx context.Context, st Store) (*domain.Identity, bool) {
	if st == nil {
		return nil, false
	}

	token, err := st.Get(ctx, KeyCredential)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Warn("credential read failed", zap.Error(err))
		}
		return nil, false
	}
	if token == "" {
		return nil, false
	}

	claims, err := DecodeCredential(token)
	if err != nil {
		r.logger.Warn("credential decode failed", zap.Error(err))
		return nil, false
	}

	if !claims.ExpiresAt.Time.After(r.now()) {
		if err := st.Clear(ctx, KeyCredential); err != nil {
			r.logger.Warn("expired credential purge failed", zap.Error(err))
		}
		r.logger.Info("expired credential purged",
			zap.String("username", claims.User.Username),
			zap.Time("expired_at", claims.ExpiresAt.Time))
		if r.dispatcher != nil {
			_ = r.dispatcher.Publish(ctx, events.New(events.EventCredentialExpired, "", events.ActorFrom(claims.User), nil))
		}
		return nil, false
	}

	return claims.User, true
}
