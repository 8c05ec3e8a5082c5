package auth

import (
	"context"
	"time"
)

// TokenStore remembers revoked refresh-token ids until they would have
// expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
