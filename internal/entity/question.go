package entity

import (
	"strings"
	"unicode/utf8"
)

const (
	AnswerCount           = 3
	QuestionTextMaxLength = 500
	AnswerMaxLength       = 200
)

type Question struct {
	ID            int64  `json:"id" db:"id"`
	SetID         int64  `json:"set_id" db:"set_id"`
	QuestionText  string `json:"question_text" db:"question_text"`
	Answer1       string `json:"answer1" db:"answer1"`
	Answer2       string `json:"answer2" db:"answer2"`
	Answer3       string `json:"answer3" db:"answer3"`
	CorrectAnswer int    `json:"correct_answer" db:"correct_answer"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return newValidationError("question_text", "question is required")
	}
	if utf8.RuneCountInString(q.QuestionText) > QuestionTextMaxLength {
		return newValidationError("question_text", "question is too long")
	}
	for _, answer := range q.Answers() {
		if utf8.RuneCountInString(answer) > AnswerMaxLength {
			return newValidationError("answer", "answer is too long")
		}
	}
	if !ValidAnswer(q.CorrectAnswer) {
		return newValidationError("correct_answer", "correct answer must be 1, 2 or 3")
	}
	return nil
}

// Answers returns the options in display order; option n is Answers()[n-1].
func (q Question) Answers() []string {
	return []string{q.Answer1, q.Answer2, q.Answer3}
}

// AnswerText returns the text of option n, or "" when n is not an option.
func (q Question) AnswerText(n int) string {
	if !ValidAnswer(n) {
		return ""
	}
	return q.Answers()[n-1]
}

func ValidAnswer(n int) bool {
	return n >= 1 && n <= AnswerCount
}
