package scoring

import (
	"sort"

	"github.com/sipcrew/partyround/internal/models"
)

// rankingOverrideReasons name the top-3 outcome overrides, best first.
var rankingOverrideReasons = []string{
	"ranked first by the crowd",
	"ranked second by the crowd",
	"ranked third by the crowd",
}

// scoreRanking builds the crowd-sourced ground truth from every submitted
// ordering, scores each player by deviation from it, then walks the final
// ranking applying the question outcome to the ranked players themselves.
func scoreRanking(question *models.Question, view *models.RoundQuestion, answers []*models.Answer, m int) ([]*models.Answer, []*models.Punishment, []string, error) {
	answers = cloneAnswers(answers)

	var missing, respondents []*models.Answer
	for _, a := range answers {
		if a.Missing() {
			missing = append(missing, a)
		} else {
			respondents = append(respondents, a)
		}
	}

	ps := newPunishmentSet()
	for _, a := range missing {
		a.Correct = false
		a.Points = -300
		ps.take(a.PlayerID, 2*m, "did not answer in time")
	}

	// Candidate order starts from the public view and absorbs any identity
	// referenced by a submission, so the final ranking is a permutation of
	// everything the round actually mentioned.
	candidates := append([]string(nil), view.Candidates...)
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c] = true
	}
	for _, r := range respondents {
		for _, c := range r.Ranking {
			if !seen[c] {
				seen[c] = true
				candidates = append(candidates, c)
			}
		}
	}

	// Ground truth: ascending sum of submitted 1-based positions, stable on
	// ties so insertion order decides.
	sums := make(map[string]int, len(candidates))
	for _, r := range respondents {
		positions := positionIndex(r.Ranking)
		for _, c := range candidates {
			sums[c] += submittedPosition(positions, c, len(r.Ranking))
		}
	}
	finalRanking := append([]string(nil), candidates...)
	sort.SliceStable(finalRanking, func(i, j int) bool {
		return sums[finalRanking[i]] < sums[finalRanking[j]]
	})

	finalPos := positionIndex(finalRanking)
	n := len(finalRanking)
	maxDeviation := n * (n - 1) / 2

	for _, r := range respondents {
		positions := positionIndex(r.Ranking)
		deviation := 0
		for _, c := range finalRanking {
			deviation += abs(submittedPosition(positions, c, len(r.Ranking)) - finalPos[c])
		}

		score := 500
		if maxDeviation > 0 {
			score = 500 - (500*deviation)/maxDeviation
			if score < 0 {
				score = 0
			}
		}
		r.Points = score
		r.Correct = deviation == 0

		switch {
		case score == 500:
			ps.give(r.PlayerID, 2*m, "perfect ranking")
		case score >= 400:
			ps.give(r.PlayerID, 1*m, "great ranking")
		case score >= 200:
			ps.take(r.PlayerID, 1*m, "mediocre ranking")
		case score >= 1:
			ps.take(r.PlayerID, 2*m, "bad ranking")
		default:
			ps.take(r.PlayerID, 3*m, "worst ranking")
		}
	}

	// Outcome walk: the better a player placed in the crowd's ranking, the
	// bigger the swing. The top three also have their band punishment
	// replaced outright with 3m/2m/1m in the outcome's direction.
	answerByPlayer := make(map[string]*models.Answer, len(answers))
	for _, a := range answers {
		answerByPlayer[a.PlayerID] = a
	}
	for rank, playerID := range finalRanking {
		delta := 100 * (n - 1 - rank)
		if a, ok := answerByPlayer[playerID]; ok {
			if question.Outcome == models.OutcomeGood {
				a.Points += delta
			} else {
				a.Points -= delta
			}
		}
		if rank < 3 {
			amount := (3 - rank) * m
			if question.Outcome == models.OutcomeGood {
				ps.setGive(playerID, amount, rankingOverrideReasons[rank])
			} else {
				ps.setTake(playerID, amount, rankingOverrideReasons[rank])
			}
		}
	}

	return answers, ps.list(), finalRanking, nil
}

// positionIndex maps each identity to its 1-based position in the list.
func positionIndex(list []string) map[string]int {
	idx := make(map[string]int, len(list))
	for i, c := range list {
		idx[c] = i + 1
	}
	return idx
}

// submittedPosition returns the 1-based position of c in a submission, or one
// past the end for identities the submission left out.
func submittedPosition(positions map[string]int, c string, listLen int) int {
	if pos, ok := positions[c]; ok {
		return pos
	}
	return listLen + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
