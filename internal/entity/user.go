package entity

import (
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 32
	PasswordMinLength = 4
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// ValidateCredentials checks a username/password pair before registration.
func ValidateCredentials(username, password string) error {
	username = strings.TrimSpace(username)
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		return newValidationError("username", "username is required")
	case n < UsernameMinLength || n > UsernameMaxLength:
		return newValidationError("username", "username must be 3-32 characters")
	}

	if utf8.RuneCountInString(password) < PasswordMinLength {
		return newValidationError("password", "password must be at least 4 characters")
	}
	return nil
}
