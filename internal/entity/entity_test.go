package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAttempt(t *testing.T) {
	questions := []Question{
		{ID: 1, QuestionText: "Q1", CorrectAnswer: 1},
		{ID: 2, QuestionText: "Q2", CorrectAnswer: 2},
		{ID: 3, QuestionText: "Q3", CorrectAnswer: 1},
	}

	result := ScoreAttempt(questions, map[int64]int{1: 1, 2: 2, 3: 3})

	require.Len(t, result.Answers, 3)
	got := []bool{result.Answers[0].IsCorrect, result.Answers[1].IsCorrect, result.Answers[2].IsCorrect}
	assert.Equal(t, []bool{true, true, false}, got)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 66, result.Percent())
}

func TestScoreAttemptMissingAndInvalidAnswers(t *testing.T) {
	questions := []Question{
		{ID: 10, CorrectAnswer: 3},
		{ID: 11, CorrectAnswer: 2},
	}

	result := ScoreAttempt(questions, map[int64]int{11: 7})

	assert.Equal(t, NoAnswer, result.Answers[0].UserAnswer)
	assert.Equal(t, NoAnswer, result.Answers[1].UserAnswer)
	assert.Zero(t, result.Correct)
}

func TestScoreAttemptEmptySet(t *testing.T) {
	result := ScoreAttempt(nil, nil)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.Percent())
	assert.Empty(t, result.Answers)
}

func TestSetValidate(t *testing.T) {
	assert.NoError(t, Set{Title: "Capitals", Description: "European capitals"}.Validate())

	var vErr *ValidationError
	err := Set{Title: "  ", Description: "x"}.Validate()
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "title", vErr.Field)

	err = Set{Title: "x", Description: ""}.Validate()
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "description", vErr.Field)

	err = Set{Title: strings.Repeat("a", TitleMaxLength+1), Description: "x"}.Validate()
	assert.Error(t, err)
}

func TestQuestionValidateCorrectAnswerRange(t *testing.T) {
	base := Question{QuestionText: "2+2?", Answer1: "4", Answer2: "5", Answer3: "22"}

	for _, correct := range []int{1, 2, 3} {
		q := base
		q.CorrectAnswer = correct
		assert.NoError(t, q.Validate(), "correct=%d", correct)
	}

	for _, correct := range []int{0, 4, -1} {
		q := base
		q.CorrectAnswer = correct
		var vErr *ValidationError
		require.True(t, errors.As(q.Validate(), &vErr), "correct=%d", correct)
		assert.Equal(t, "correct_answer", vErr.Field)
	}
}

func TestQuestionAnswerText(t *testing.T) {
	q := Question{Answer1: "a", Answer2: "b", Answer3: "c"}
	assert.Equal(t, "b", q.AnswerText(2))
	assert.Equal(t, "", q.AnswerText(NoAnswer))
	assert.Equal(t, "", q.AnswerText(4))
}

func TestCommentValidate(t *testing.T) {
	assert.NoError(t, Comment{CommentText: "nice set"}.Validate())
	assert.Error(t, Comment{CommentText: " \n\t"}.Validate())
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("alice", "secret"))
	assert.Error(t, ValidateCredentials("", "secret"))
	assert.Error(t, ValidateCredentials("al", "secret"))
	assert.Error(t, ValidateCredentials("alice", "abc"))
}

func TestSetCategoryHelpers(t *testing.T) {
	id := int64(2)
	name := "Historia"
	s := Set{UserID: 5, CategoryID: &id, CategoryName: &name}

	assert.True(t, s.HasCategory(2))
	assert.False(t, s.HasCategory(3))
	assert.Equal(t, "Historia", s.Category())
	assert.True(t, s.OwnedBy(5))
	assert.False(t, s.OwnedBy(6))
	assert.False(t, Set{}.OwnedBy(0))
	assert.Equal(t, "", Set{}.Category())
}
