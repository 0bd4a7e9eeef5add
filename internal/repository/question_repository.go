package repository

import (
	"context"
	"fmt"

	"quizhub/internal/database"
	"quizhub/internal/entity"
)

const questionColumns = `id, set_id, question_text, answer1, answer2, answer3, correct_answer`

type QuestionRepository struct {
	db *database.DB
}

func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// AddQuestion validates q and appends it to the set.
func (r *QuestionRepository) AddQuestion(ctx context.Context, setID int64, q entity.Question) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	id, err := r.db.Execute(ctx, `
		INSERT INTO questions (set_id, question_text, answer1, answer2, answer3, correct_answer)
		VALUES (?, ?, ?, ?, ?, ?)
	`, setID, q.QuestionText, q.Answer1, q.Answer2, q.Answer3, q.CorrectAnswer)
	if err != nil {
		return 0, fmt.Errorf("add question to set %d: %w", setID, err)
	}
	return id, nil
}

func (r *QuestionRepository) ListQuestions(ctx context.Context, setID int64) ([]entity.Question, error) {
	questions := make([]entity.Question, 0)
	err := r.db.Query(ctx, &questions, `
		SELECT `+questionColumns+` FROM questions WHERE set_id = ? ORDER BY id
	`, setID)
	return questions, err
}

func (r *QuestionRepository) GetQuestion(ctx context.Context, id int64) (entity.Question, error) {
	var q entity.Question
	err := r.db.Get(ctx, &q, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	return q, err
}

// UpdateQuestion rewrites the text, options and correct option of q.ID.
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, q entity.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx, `
		UPDATE questions
		SET question_text = ?, answer1 = ?, answer2 = ?, answer3 = ?, correct_answer = ?
		WHERE id = ?
	`, q.QuestionText, q.Answer1, q.Answer2, q.Answer3, q.CorrectAnswer, q.ID)
	if err != nil {
		return fmt.Errorf("update question %d: %w", q.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) CountQuestions(ctx context.Context, setID int64) (int, error) {
	var count int
	err := r.db.Get(ctx, &count, `SELECT COUNT(*) FROM questions WHERE set_id = ?`, setID)
	return count, err
}
