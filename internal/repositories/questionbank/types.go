package questionbank

import "github.com/sipcrew/partyround/internal/models"

type GetQuestionInput struct {
	QuestionID string
}

type SampleQuestionsInput struct {
	// Types restricts the draw; empty means every archetype
	Types []models.QuestionType

	// Count is how many questions to draw
	Count int
}

type SampleQuestionsOutput struct {
	Questions []*models.Question
}
