package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizhub/internal/database"
	"quizhub/internal/entity"
)

func TestAddQuestionListsInInsertOrder(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Quiz", "desc", nil)
	first := repos.mustQuestion(t, setID, "First?", 1)
	second := repos.mustQuestion(t, setID, "Second?", 3)

	questions, err := repos.questions.ListQuestions(ctx, setID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, first, questions[0].ID)
	assert.Equal(t, second, questions[1].ID)
	assert.Equal(t, 3, questions[1].CorrectAnswer)
	assert.Equal(t, []string{"one", "two", "three"}, questions[0].Answers())
}

func TestAddQuestionRejectsInvalidCorrectAnswer(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Quiz", "desc", nil)

	for _, correct := range []int{0, 4, -1} {
		_, err := repos.questions.AddQuestion(ctx, setID, entity.Question{
			QuestionText:  "Broken?",
			Answer1:       "a",
			Answer2:       "b",
			Answer3:       "c",
			CorrectAnswer: correct,
		})
		var vErr *entity.ValidationError
		assert.True(t, errors.As(err, &vErr), "correct answer %d", correct)
	}

	count, err := repos.questions.CountQuestions(ctx, setID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAddQuestionToMissingSet(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))

	_, err := repos.questions.AddQuestion(context.Background(), 999, entity.Question{
		QuestionText:  "Orphan?",
		Answer1:       "a",
		Answer2:       "b",
		Answer3:       "c",
		CorrectAnswer: 1,
	})
	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)
}

func TestUpdateQuestion(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Quiz", "desc", nil)
	id := repos.mustQuestion(t, setID, "Before?", 1)

	updated := entity.Question{
		ID:            id,
		QuestionText:  "After?",
		Answer1:       "x",
		Answer2:       "y",
		Answer3:       "z",
		CorrectAnswer: 2,
	}
	require.NoError(t, repos.questions.UpdateQuestion(ctx, updated))

	stored, err := repos.questions.GetQuestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "After?", stored.QuestionText)
	assert.Equal(t, "y", stored.AnswerText(stored.CorrectAnswer))
	assert.Equal(t, setID, stored.SetID)

	updated.CorrectAnswer = 5
	var vErr *entity.ValidationError
	assert.True(t, errors.As(repos.questions.UpdateQuestion(ctx, updated), &vErr))

	stored, err = repos.questions.GetQuestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CorrectAnswer)

	updated.ID = id + 100
	updated.CorrectAnswer = 1
	assert.ErrorIs(t, repos.questions.UpdateQuestion(ctx, updated), ErrNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Quiz", "desc", nil)
	id := repos.mustQuestion(t, setID, "Going?", 1)
	repos.mustQuestion(t, setID, "Staying?", 2)

	require.NoError(t, repos.questions.DeleteQuestion(ctx, id))
	assert.ErrorIs(t, repos.questions.DeleteQuestion(ctx, id), ErrNotFound)

	_, err := repos.questions.GetQuestion(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := repos.questions.CountQuestions(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
