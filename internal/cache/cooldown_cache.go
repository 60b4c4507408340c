package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownCache enforces the OTP resend cooldown server-side, across
// devices, by keeping a TTL key per mobile number. The in-session
// countdown mirrors it for the client.
type CooldownCache interface {
	Arm(ctx context.Context, mobileNumber string, d time.Duration) error
	Remaining(ctx context.Context, mobileNumber string) (int, error)
}

type cooldownCache struct {
	client *redis.Client
}

// NewCooldownCache creates a Redis-backed cooldown cache.
func NewCooldownCache(client *redis.Client) CooldownCache {
	return &cooldownCache{
		client: client,
	}
}

func (c *cooldownCache) Arm(ctx context.Context, mobileNumber string, d time.Duration) error {
	return c.client.Set(ctx, "otp:cooldown:"+mobileNumber, 1, d).Err()
}

// Remaining reports whole seconds left on the cooldown, zero when expired.
func (c *cooldownCache) Remaining(ctx context.Context, mobileNumber string) (int, error) {
	ttl, err := c.client.TTL(ctx, "otp:cooldown:"+mobileNumber).Result()
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, nil
	}
	return int(ttl.Round(time.Second).Seconds()), nil
}
