// internal/pkg/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginAttempts = 5
	loginWindow      = 15 * time.Minute
)

// LoginLimiter is a fixed-window counter over redis keyed by ip+email. It
// protects the credential-issuance path only; it takes no part in
// authorization decisions.
type LoginLimiter struct {
	client *redis.Client
}

func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

func loginKey(ip, email string) string {
	return fmt.Sprintf("login_attempts:%s:%s", ip, email)
}

// Check records one attempt and reports whether the caller is still within
// the window, plus the attempts left before lockout.
func (l *LoginLimiter) Check(ctx context.Context, ip, email string) (bool, int64, error) {
	key := loginKey(ip, email)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempts: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, loginWindow).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set attempt window: %w", err)
		}
	}

	remaining := int64(maxLoginAttempts) - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= maxLoginAttempts, remaining, nil
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, ip, email string) error {
	return l.client.Del(ctx, loginKey(ip, email)).Err()
}
