package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"soulcare/internal/session"
)

// AssessmentSessionCache stores the in-flight assessment session per user
// so it survives between requests.
type AssessmentSessionCache interface {
	Set(ctx context.Context, sess *session.AssessmentSession) error
	Get(ctx context.Context, userID string) (*session.AssessmentSession, error)
	Delete(ctx context.Context, userID string) error
}

type assessmentSessionCache struct {
	client *redis.Client
}

// NewAssessmentSessionCache creates a Redis-backed session cache.
func NewAssessmentSessionCache(client *redis.Client) AssessmentSessionCache {
	return &assessmentSessionCache{
		client: client,
	}
}

func (c *assessmentSessionCache) Set(ctx context.Context, sess *session.AssessmentSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "assessment:session:"+sess.UserID, data, time.Hour).Err()
}

// Get returns nil without error when no session is live for the user.
func (c *assessmentSessionCache) Get(ctx context.Context, userID string) (*session.AssessmentSession, error) {
	data, err := c.client.Get(ctx, "assessment:session:"+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess session.AssessmentSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *assessmentSessionCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "assessment:session:"+userID).Err()
}
