package internal

import (
	"context"
	"strings"
	"time"
)

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

// Identity is the caller on whose behalf an operation runs. It is passed
// explicitly into ticket and messaging calls.
type Identity struct {
	UserID int64  `json:"user_id,omitempty"`
	Name   string `json:"name"`
	// Bootstrap is set when the login was accepted because no credentials exist yet.
	Bootstrap bool `json:"bootstrap,omitempty"`
}

// DisplayName returns the trimmed name, or fallback when empty.
func (i Identity) DisplayName(fallback string) string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return fallback
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(ContextIdentityKey).(Identity)
	return id, ok
}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, id)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
