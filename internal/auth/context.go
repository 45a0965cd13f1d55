// Package auth holds the identity model, bearer token handling and password
// hashing.
package auth

import (
	"context"
)

// Identity is the claim set carried by a verified token.
type Identity struct {
	UserID int64
	Email  string
}

type contextKey string

const identityKey contextKey = "identity"

func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns nil when the request carries no verified token.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
