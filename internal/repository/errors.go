package repository

import (
	"errors"

	"quizhub/internal/database"
)

var (
	ErrNotFound           = database.ErrNotFound
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
