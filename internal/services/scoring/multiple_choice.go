package scoring

import (
	"github.com/sipcrew/partyround/internal/models"
)

// rankBonuses reward the fastest correct answers on top of the base 100.
var rankBonuses = []int{50, 25, 10}

// scoreMultipleChoice resolves the correct option once from the bank record
// and awards speed-ranked points. Drink punishments depend on how the whole
// group did, so the base rules have a stack of group-size overrides.
func scoreMultipleChoice(question *models.Question, answers []*models.Answer, m int) ([]*models.Answer, []*models.Punishment, error) {
	if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
		return nil, nil, ErrMalformedQuestion
	}
	correctValue := question.Options[question.CorrectOption]

	answers = cloneAnswers(answers)
	sortByAnsweredAt(answers)

	var missing, right, wrong []*models.Answer
	for _, a := range answers {
		switch {
		case a.Missing():
			missing = append(missing, a)
		case a.Value == correctValue:
			right = append(right, a)
		default:
			wrong = append(wrong, a)
		}
	}

	for i, a := range right {
		a.Correct = true
		a.Points = 100
		if i < len(rankBonuses) {
			a.Points += rankBonuses[i]
		}
	}
	for _, a := range wrong {
		a.Correct = false
		a.Points = -100
	}
	for _, a := range missing {
		a.Correct = false
		a.Points = -300
	}

	ps := newPunishmentSet()
	if len(right) == 0 {
		// Collective failure replaces the per-answer base drinks, for the
		// missing players too.
		for _, a := range answers {
			ps.take(a.PlayerID, 3*m, "nobody got it right")
		}
	} else {
		for _, a := range missing {
			ps.take(a.PlayerID, 2*m, "did not answer in time")
		}
		for _, a := range wrong {
			ps.take(a.PlayerID, 1*m, "wrong answer")
		}
	}

	if len(right) == 1 {
		ps.give(right[0].PlayerID, 2*m, "only correct answer")
	}
	if len(missing) == 1 {
		ps.take(missing[0].PlayerID, 2*m, "only one missing")
	}
	if len(wrong) == 1 && len(missing) == 0 {
		ps.take(wrong[0].PlayerID, 1*m, "only wrong answer")
	}
	if len(missing) == 0 && len(wrong) == 0 && len(right) > 0 {
		ps.give(right[0].PlayerID, 1*m, "fastest correct answer")
	}
	if len(missing) == 0 && len(right) == 0 && len(wrong) > 0 {
		ps.take(wrong[len(wrong)-1].PlayerID, 1*m, "slowest wrong answer")
	}

	return answers, ps.list(), nil
}
