package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 2000
)

// Set is a named collection of questions owned by one user.
type Set struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CategoryID  *int64    `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Filled by joins.
	CategoryName  *string `json:"category_name,omitempty" db:"category_name"`
	Username      string  `json:"username" db:"username"`
	QuestionCount int     `json:"question_count" db:"question_count"`
}

func (s Set) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return newValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(s.Title) > TitleMaxLength {
		return newValidationError("title", "title is too long")
	}
	if strings.TrimSpace(s.Description) == "" {
		return newValidationError("description", "description is required")
	}
	if utf8.RuneCountInString(s.Description) > DescriptionMaxLength {
		return newValidationError("description", "description is too long")
	}
	return nil
}

func (s Set) OwnedBy(userID int64) bool {
	return userID > 0 && s.UserID == userID
}

func (s Set) HasCategory(id int64) bool {
	return s.CategoryID != nil && *s.CategoryID == id
}

func (s Set) Category() string {
	if s.CategoryName == nil {
		return ""
	}
	return *s.CategoryName
}
