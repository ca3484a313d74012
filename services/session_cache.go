package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codearena/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache is an optional Redis read-through cache in front of the
// session collection. MongoDB stays the source of truth; supersession
// drops every cached token of the user.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// GlobalSessionCache is nil when Redis is not configured; callers treat
// that as cache-disabled.
var GlobalSessionCache *SessionCache

func NewSessionCache(redisURL string, ttl time.Duration) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SessionCache{client: client, ttl: ttl}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

func userTokensKey(userID string) string {
	return "user_sessions:" + userID
}

func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	ctx := context.Background()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := sc.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.SessionToken), data, sc.ttl)
	// Track the token under its user so supersession can evict it.
	pipe.SAdd(ctx, userTokensKey(session.UserID), session.SessionToken)
	pipe.Expire(ctx, userTokensKey(session.UserID), sc.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

func (sc *SessionCache) GetSession(token string) (*model.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("session token cannot be empty")
	}

	ctx := context.Background()

	data, err := sc.client.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from cache: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (sc *SessionCache) DeleteSession(token string) error {
	if token == "" {
		return fmt.Errorf("session token cannot be empty")
	}
	return sc.client.Del(context.Background(), sessionKey(token)).Err()
}

// InvalidateUser evicts every cached session of the user at once.
func (sc *SessionCache) InvalidateUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	ctx := context.Background()

	tokens, err := sc.client.SMembers(ctx, userTokensKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to list cached sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}
	keys = append(keys, userTokensKey(userID))

	if err := sc.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to evict cached sessions: %w", err)
	}
	return nil
}

func (sc *SessionCache) Close() error {
	return sc.client.Close()
}
