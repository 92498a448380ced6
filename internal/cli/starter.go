package cli

import "github.com/sipcrew/partyround/internal/models"

// starterQuestions is the built-in question pack, used to seed a fresh bank
// and as the in-memory bank when no Postgres is configured.
func starterQuestions() []*models.Question {
	return []*models.Question{
		{
			ID:            "mc-sun",
			Type:          models.QuestionTypeMultipleChoice,
			Prompt:        "Which planet is closest to the sun?",
			Options:       []string{"Venus", "Mercury", "Earth", "Mars"},
			CorrectOption: 1,
		},
		{
			ID:            "mc-spider",
			Type:          models.QuestionTypeMultipleChoice,
			Prompt:        "How many legs does a spider have?",
			Options:       []string{"six", "eight", "ten"},
			CorrectOption: 1,
		},
		{
			ID:            "mc-capital",
			Type:          models.QuestionTypeMultipleChoice,
			Prompt:        "What is the capital of Australia?",
			Options:       []string{"Sydney", "Melbourne", "Canberra", "Perth"},
			CorrectOption: 2,
		},
		{
			ID:      "wr-fly",
			Type:    models.QuestionTypeWouldRather,
			Prompt:  "Would you rather be able to fly or to teleport?",
			Options: []string{"fly", "teleport"},
		},
		{
			ID:      "wr-talk",
			Type:    models.QuestionTypeWouldRather,
			Prompt:  "Would you rather talk to animals or speak every language?",
			Options: []string{"animals", "languages"},
		},
		{
			ID:      "wwr-wedding",
			Type:    models.QuestionTypeWhoWouldRather,
			Prompt:  "Who would rather sleep through their own wedding?",
			Outcome: models.OutcomeBad,
		},
		{
			ID:      "wwr-stage",
			Type:    models.QuestionTypeWhoWouldRather,
			Prompt:  "Who would rather jump on stage at a concert?",
			Outcome: models.OutcomeGood,
		},
		{
			ID:      "rank-late",
			Type:    models.QuestionTypeRanking,
			Prompt:  "Rank everyone by how late they usually show up",
			Outcome: models.OutcomeBad,
		},
		{
			ID:      "rank-karaoke",
			Type:    models.QuestionTypeRanking,
			Prompt:  "Rank everyone by karaoke confidence",
			Outcome: models.OutcomeGood,
		},
	}
}
