// Package scoring turns a round's raw answers into points and punishments.
// There is exactly one handler per question archetype; all of them are pure,
// so scoring the same input twice produces identical output.
package scoring

import (
	"github.com/sipcrew/partyround/internal/models"
)

// Score dispatches to the archetype handler for the round's question and
// returns the updated answers, the accumulated punishments and, for ranking
// rounds, the computed final ranking.
func Score(in *Input) (*Output, error) {
	if in == nil {
		return nil, ErrNilInput
	}
	if in.Question == nil {
		return nil, ErrNilQuestion
	}
	if in.View == nil {
		return nil, ErrNilView
	}

	m := in.Multiplier
	if m < 1 {
		m = 1
	}

	switch in.Question.Type {
	case models.QuestionTypeMultipleChoice:
		answers, punishments, err := scoreMultipleChoice(in.Question, in.Answers, m)
		if err != nil {
			return nil, err
		}
		return &Output{Answers: answers, Punishments: punishments}, nil
	case models.QuestionTypeWouldRather:
		answers, punishments, err := scoreWouldRather(in.View, in.Answers, m)
		if err != nil {
			return nil, err
		}
		return &Output{Answers: answers, Punishments: punishments}, nil
	case models.QuestionTypeWhoWouldRather:
		answers, punishments, err := scoreWhoWouldRather(in.Question, in.View, in.Answers, m)
		if err != nil {
			return nil, err
		}
		return &Output{Answers: answers, Punishments: punishments}, nil
	case models.QuestionTypeRanking:
		answers, punishments, finalRanking, err := scoreRanking(in.Question, in.View, in.Answers, m)
		if err != nil {
			return nil, err
		}
		return &Output{Answers: answers, Punishments: punishments, FinalRanking: finalRanking}, nil
	default:
		return nil, ErrUnknownArchetype
	}
}
