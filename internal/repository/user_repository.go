package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"quizhub/internal/database"
	"quizhub/internal/entity"
)

type UserRepository struct {
	db   *database.DB
	cost int
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db, cost: bcrypt.DefaultCost}
}

// CreateUser stores a new user with a bcrypt hash of password.
func (r *UserRepository) CreateUser(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if err := entity.ValidateCredentials(username, password); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := r.db.Execute(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)
	`, username, string(hash))
	if errors.Is(err, database.ErrUniqueViolation) {
		return 0, ErrUsernameTaken
	}
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// CheckLogin returns the user when the password matches. Unknown usernames
// and wrong passwords both yield ErrInvalidCredentials.
func (r *UserRepository) CheckLogin(ctx context.Context, username, password string) (entity.User, error) {
	var user entity.User
	err := r.db.Get(ctx, &user, `
		SELECT id, username, password_hash FROM users WHERE username = ?
	`, strings.TrimSpace(username))
	if errors.Is(err, database.ErrNotFound) {
		return entity.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("check login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return entity.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (entity.User, error) {
	var user entity.User
	err := r.db.Get(ctx, &user, `
		SELECT id, username, password_hash FROM users WHERE id = ?
	`, id)
	return user, err
}
