package questionbank

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/sipcrew/partyround/internal/repositories/questionbank Repository

import (
	"context"

	"github.com/sipcrew/partyround/internal/models"
)

// Repository defines the read path of the question bank
type Repository interface {
	// GetQuestion retrieves a question by ID, answer key included
	GetQuestion(ctx context.Context, input *GetQuestionInput) (*models.Question, error)

	// SampleQuestions draws a random set of questions of the given types
	SampleQuestions(ctx context.Context, input *SampleQuestionsInput) (*SampleQuestionsOutput, error)
}
