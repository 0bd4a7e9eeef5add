package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

const CommentMaxLength = 1000

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	SetID       int64     `json:"set_id" db:"set_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CommentText string    `json:"comment_text" db:"comment_text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Username    string    `json:"username" db:"username"`
}

func (c Comment) Validate() error {
	text := strings.TrimSpace(c.CommentText)
	if text == "" {
		return newValidationError("comment_text", "comment cannot be empty")
	}
	if utf8.RuneCountInString(text) > CommentMaxLength {
		return newValidationError("comment_text", "comment is too long")
	}
	return nil
}
