package questionbank

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/sipcrew/partyround/internal/models"
)

// Seed inserts questions into the bank, skipping ids that already exist.
func Seed(ctx context.Context, db *bun.DB, questions []*models.Question) error {
	if db == nil {
		return errors.New("database handle cannot be nil")
	}
	if len(questions) == 0 {
		return nil
	}

	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow{
			ID:            q.ID,
			Type:          q.Type,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Outcome:       q.Outcome,
		})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed questions: %w", err)
	}

	return nil
}
