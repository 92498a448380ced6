package scoring

import (
	"github.com/sipcrew/partyround/internal/models"
)

// scoreWhoWouldRather settles a vote between two player identities. Unlike
// the plain would-rather archetype, an equal count on both sides is a tie
// even at 0-0. The winning identity is the round's target: the question's
// outcome decides whether being picked is a reward or a punishment.
func scoreWhoWouldRather(question *models.Question, view *models.RoundQuestion, answers []*models.Answer, m int) ([]*models.Answer, []*models.Punishment, error) {
	if len(view.Options) != 2 {
		return nil, nil, ErrMalformedQuestion
	}
	optionA, optionB := view.Options[0], view.Options[1]

	answers = cloneAnswers(answers)

	var missing, votesA, votesB []*models.Answer
	for _, a := range answers {
		switch {
		case a.Missing():
			missing = append(missing, a)
		case a.Value == optionA:
			votesA = append(votesA, a)
		case a.Value == optionB:
			votesB = append(votesB, a)
		}
	}

	ps := newPunishmentSet()
	for _, a := range missing {
		a.Correct = false
		a.Points = 0
		ps.take(a.PlayerID, 2*m, "did not answer in time")
	}

	if len(votesA) == len(votesB) {
		// Tie, 0-0 included. The two named players are spared; everyone
		// else drinks.
		for _, a := range answers {
			if a.Missing() || a.PlayerID == optionA || a.PlayerID == optionB {
				continue
			}
			ps.take(a.PlayerID, 1*m, "tied vote")
		}
		return answers, ps.list(), nil
	}

	winners, losers, target := votesA, votesB, optionA
	if len(votesB) > len(votesA) {
		winners, losers, target = votesB, votesA, optionB
	}

	for _, a := range winners {
		a.Correct = true
		a.Points = 100
	}
	for _, a := range losers {
		a.Correct = false
		a.Points = -50
	}

	if len(losers) == 0 {
		for _, a := range winners {
			ps.take(a.PlayerID, 1*m, "clear consensus")
		}
	}
	if len(losers) == 1 && len(missing) == 0 {
		ps.take(losers[0].PlayerID, 2*m, "lone minority vote")
	}

	if question.Outcome == models.OutcomeGood {
		ps.give(target, 2*m, "the crowd rallied behind you")
	} else {
		ps.take(target, 2*m, "the vote landed on you")
	}

	return answers, ps.list(), nil
}
