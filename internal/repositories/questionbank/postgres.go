package questionbank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/sipcrew/partyround/internal/models"
)

// ErrQuestionNotFound is returned when a question is not found
var ErrQuestionNotFound = errors.New("question not found")

// PostgresConfig holds configuration for the Postgres question bank
type PostgresConfig struct {
	// DB is the bun database handle
	DB *bun.DB
}

// questionRow is the questions table shape
type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID            string              `bun:"id,pk"`
	Type          models.QuestionType `bun:"type"`
	Prompt        string              `bun:"prompt"`
	Options       []string            `bun:"options,type:jsonb"`
	CorrectOption int                 `bun:"correct_option"`
	Outcome       models.Outcome      `bun:"outcome"`
}

func (r *questionRow) toModel() *models.Question {
	return &models.Question{
		ID:            r.ID,
		Type:          r.Type,
		Prompt:        r.Prompt,
		Options:       r.Options,
		CorrectOption: r.CorrectOption,
		Outcome:       r.Outcome,
	}
}

// postgresRepository implements the Repository interface on Postgres
type postgresRepository struct {
	db *bun.DB
}

// NewPostgres creates a Postgres-backed question bank
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("database handle cannot be nil")
	}

	return &postgresRepository{
		db: cfg.DB,
	}, nil
}

// GetQuestion retrieves a question by ID
func (r *postgresRepository) GetQuestion(ctx context.Context, input *GetQuestionInput) (*models.Question, error) {
	if input == nil || input.QuestionID == "" {
		return nil, errors.New("input and question ID cannot be empty")
	}

	row := new(questionRow)
	err := r.db.NewSelect().
		Model(row).
		Where("q.id = ?", input.QuestionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return row.toModel(), nil
}

// SampleQuestions draws a random set of questions of the given types
func (r *postgresRepository) SampleQuestions(ctx context.Context, input *SampleQuestionsInput) (*SampleQuestionsOutput, error) {
	if input == nil || input.Count <= 0 {
		return nil, errors.New("input and count must be positive")
	}

	var rows []questionRow
	q := r.db.NewSelect().
		Model(&rows).
		OrderExpr("random()").
		Limit(input.Count)
	if len(input.Types) > 0 {
		q = q.Where("q.type IN (?)", bun.In(input.Types))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}

	questions := make([]*models.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, rows[i].toModel())
	}

	return &SampleQuestionsOutput{
		Questions: questions,
	}, nil
}
