package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sipcrew/partyround/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix  = "party:session:"
	activeSessionsKey = "party:active_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrVersionConflict is returned when a save loses the race against a
// concurrent writer. The caller should reload and retry.
var ErrVersionConflict = errors.New("session version conflict")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session to Redis. The write only lands if the stored
// document still carries the version the caller loaded; on success the
// session's Version is bumped in place so the caller holds the fresh token.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.Code == "" {
		return errors.New("session code cannot be empty")
	}

	sessionKey := sessionKeyPrefix + input.Session.Code

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, sessionKey).Result()
		switch {
		case err == redis.Nil:
			// First write of this code
			if input.Session.Version != 0 {
				return ErrVersionConflict
			}
		case err != nil:
			return fmt.Errorf("failed to read current session: %w", err)
		default:
			var stored models.Session
			if err := json.Unmarshal([]byte(current), &stored); err != nil {
				return fmt.Errorf("failed to unmarshal stored session: %w", err)
			}
			if stored.Version != input.Session.Version {
				return ErrVersionConflict
			}
		}

		next := *input.Session
		next.Version++

		sessionJSON, err := json.Marshal(&next)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey, sessionJSON, 0)
			if next.Active {
				pipe.SAdd(ctx, activeSessionsKey, next.Code)
			} else {
				pipe.SRem(ctx, activeSessionsKey, next.Code)
			}
			return nil
		})
		return err
	}, sessionKey)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return ErrVersionConflict
		}
		if errors.Is(err, ErrVersionConflict) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to save session: %w", err)
	}

	input.Session.Version++
	return nil
}

// GetSession retrieves a session by join code from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and session code cannot be empty")
	}

	sessionKey := sessionKeyPrefix + input.Code
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession removes a session from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and session code cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKeyPrefix+input.Code)
	pipe.SRem(ctx, activeSessionsKey, input.Code)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// GetActiveSessions retrieves all active sessions from Redis
func (r *redisRepository) GetActiveSessions(ctx context.Context, input *GetActiveSessionsInput) (*GetActiveSessionsOutput, error) {
	codes, err := r.client.SMembers(ctx, activeSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active session codes: %w", err)
	}

	if len(codes) == 0 {
		return &GetActiveSessionsOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	sessionCommands := make(map[string]*redis.StringCmd, len(codes))
	for _, code := range codes {
		sessionCommands[code] = pipe.Get(ctx, sessionKeyPrefix+code)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get active sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(codes))
	for code, cmd := range sessionCommands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Session was deleted between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", code, err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", code, err)
		}

		sessions = append(sessions, &session)
	}

	return &GetActiveSessionsOutput{
		Sessions: sessions,
	}, nil
}
