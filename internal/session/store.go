package session

import (
	"context"
	"errors"
)

// Slot keys held in a session scope.
const (
	KeyCredential     = "token"
	KeyRememberedUser = "rememberedUser"
	KeyNotice         = "notice"
)

// ErrNotFound is returned by Store.Get when the slot is empty.
var ErrNotFound = errors.New("session: slot not found")

// Store is a key-value namespace belonging to one browser.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// Backend hands out scoped stores.
type Backend interface {
	Scope(id string) Store
}

// Has reports whether key holds a non-empty value. Read errors count as absent.
func Has(ctx context.Context, st Store, key string) bool {
	if st == nil {
		return false
	}
	v, err := st.Get(ctx, key)
	return err == nil && v != ""
}

type storeCtxKey struct{}

// ContextWithStore attaches st to ctx so outbound calls can read the credential.
func ContextWithStore(ctx context.Context, st Store) context.Context {
	return context.WithValue(ctx, storeCtxKey{}, st)
}

// FromContext returns the store attached by ContextWithStore, or nil.
func FromContext(ctx context.Context) Store {
	if ctx == nil {
		return nil
	}
	st, _ := ctx.Value(storeCtxKey{}).(Store)
	return st
}
