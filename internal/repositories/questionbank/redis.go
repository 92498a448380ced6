package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/sipcrew/partyround/internal/models"
)

const questionKeyPrefix = "party:question:"

// CacheConfig holds configuration for the caching question bank
type CacheConfig struct {
	// Redis client
	RedisClient *redis.Client

	// Loader is the backing bank, usually the Postgres repository
	Loader Repository

	// TTL bounds how long cached questions live; a little jitter is added
	// so a whole draw does not expire at once
	TTL time.Duration
}

// cachedRepository caches whole question documents in Redis and falls back
// to the loader on a miss. Loads for the same question are de-duplicated
// with singleflight.
type cachedRepository struct {
	client *redis.Client
	loader Repository
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

// NewCached creates a Redis-caching question bank in front of a loader
func NewCached(cfg *CacheConfig) (*cachedRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Loader == nil {
		return nil, errors.New("loader cannot be nil")
	}

	return &cachedRepository{
		client: cfg.RedisClient,
		loader: cfg.Loader,
		ttl:    cfg.TTL,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// GetQuestion retrieves a question, serving from cache when possible
func (r *cachedRepository) GetQuestion(ctx context.Context, input *GetQuestionInput) (*models.Question, error) {
	if input == nil || input.QuestionID == "" {
		return nil, errors.New("input and question ID cannot be empty")
	}

	questionKey := questionKeyPrefix + input.QuestionID
	if cached, err := r.client.Get(ctx, questionKey).Result(); err == nil {
		var question models.Question
		if err := json.Unmarshal([]byte(cached), &question); err == nil {
			return &question, nil
		}
		// A corrupt cache entry falls through to the loader
	}

	result, err, _ := r.sf.Do(input.QuestionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it
		if cached, err := r.client.Get(ctx, questionKey).Result(); err == nil {
			var question models.Question
			if err := json.Unmarshal([]byte(cached), &question); err == nil {
				return &question, nil
			}
		}

		question, err := r.loader.GetQuestion(ctx, input)
		if err != nil {
			return nil, err
		}

		r.fill(ctx, question)
		return question, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Question), nil
}

// SampleQuestions always draws from the loader, then primes the cache so the
// per-round GetQuestion calls of the session hit Redis.
func (r *cachedRepository) SampleQuestions(ctx context.Context, input *SampleQuestionsInput) (*SampleQuestionsOutput, error) {
	out, err := r.loader.SampleQuestions(ctx, input)
	if err != nil {
		return nil, err
	}

	for _, question := range out.Questions {
		r.fill(ctx, question)
	}

	return out, nil
}

func (r *cachedRepository) fill(ctx context.Context, question *models.Question) {
	questionJSON, err := json.Marshal(question)
	if err != nil {
		return
	}
	// Cache failures are not fatal, the loader remains the source of truth
	r.client.Set(ctx, questionKeyPrefix+question.ID, questionJSON, r.ttlWithJitter())
}

func (r *cachedRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitter := time.Duration(r.rnd.Int63n(int64(r.ttl) / 10))
	return r.ttl + jitter
}

var _ Repository = (*cachedRepository)(nil)
