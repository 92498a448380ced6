package questionbank

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/sipcrew/partyround/internal/models"
)

// memoryRepository is a static in-memory question bank, used for local
// development and tests when no Postgres is configured.
type memoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.Question
	ids  []string
	rnd  *rand.Rand
}

// NewMemory creates an in-memory question bank from a fixed question list
func NewMemory(questions []*models.Question) (*memoryRepository, error) {
	if len(questions) == 0 {
		return nil, errors.New("questions cannot be empty")
	}

	repo := &memoryRepository{
		byID: make(map[string]*models.Question, len(questions)),
		ids:  make([]string, 0, len(questions)),
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, q := range questions {
		if _, ok := repo.byID[q.ID]; ok {
			continue
		}
		repo.byID[q.ID] = q
		repo.ids = append(repo.ids, q.ID)
	}
	return repo, nil
}

// GetQuestion retrieves a question by ID
func (r *memoryRepository) GetQuestion(_ context.Context, input *GetQuestionInput) (*models.Question, error) {
	if input == nil || input.QuestionID == "" {
		return nil, errors.New("input and question ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.byID[input.QuestionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// SampleQuestions draws a random set of questions of the given types
func (r *memoryRepository) SampleQuestions(_ context.Context, input *SampleQuestionsInput) (*SampleQuestionsOutput, error) {
	if input == nil || input.Count <= 0 {
		return nil, errors.New("input and count must be positive")
	}

	allowed := func(t models.QuestionType) bool {
		if len(input.Types) == 0 {
			return true
		}
		for _, want := range input.Types {
			if want == t {
				return true
			}
		}
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	shuffled := make([]string, len(r.ids))
	copy(shuffled, r.ids)
	r.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	out := &SampleQuestionsOutput{}
	for _, id := range shuffled {
		if len(out.Questions) == input.Count {
			break
		}
		if q := r.byID[id]; allowed(q.Type) {
			out.Questions = append(out.Questions, q)
		}
	}
	return out, nil
}

var _ Repository = (*memoryRepository)(nil)
