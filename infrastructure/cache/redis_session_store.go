package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
)

const (
	sessionKeyPrefix  = "yt-dashboard:session:"
	maxUpdateAttempts = 5
)

// RedisSessionStore shares sessions between instances. Updates use
// WATCH/MULTI so concurrent writers never lose each other's changes.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) repository.ISearchSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisSessionStore) Create(ctx context.Context, session *model.SearchSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode search session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store search session: %w", err)
	}
	if !ok {
		return fmt.Errorf("search session %s already exists", session.ID)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*model.SearchSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search session: %w", err)
	}
	return decodeSession(data)
}

func (s *RedisSessionStore) Update(ctx context.Context, id string, fn func(*model.SearchSession) error) (*model.SearchSession, error) {
	key := sessionKey(id)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var updated *model.SearchSession
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
			}
			if err != nil {
				return fmt.Errorf("failed to load search session: %w", err)
			}
			session, err := decodeSession(data)
			if err != nil {
				return err
			}
			if err := fn(session); err != nil {
				return err
			}
			payload, err := json.Marshal(session)
			if err != nil {
				return fmt.Errorf("failed to encode search session: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, s.ttl)
				return nil
			})
			if err != nil {
				return err
			}
			updated = session
			return nil
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("failed to update search session %s: too much contention", id)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete search session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}
	return nil
}

func decodeSession(data []byte) (*model.SearchSession, error) {
	var session model.SearchSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode search session: %w", err)
	}
	if session.PageTokens == nil {
		session.PageTokens = map[int]string{}
	}
	if session.Videos == nil {
		session.Videos = []model.VideoSummary{}
	}
	return &session, nil
}
