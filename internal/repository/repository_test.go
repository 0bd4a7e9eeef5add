package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quizhub/internal/config"
	"quizhub/internal/database"
	"quizhub/internal/entity"
)

type testRepos struct {
	db         *database.DB
	users      *UserRepository
	categories *CategoryRepository
	sets       *SetRepository
	questions  *QuestionRepository
	comments   *CommentRepository
}

func newTestSQLiteDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	require.NoError(t, database.Migrate(cfg))

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestRepos(t *testing.T, db *database.DB) testRepos {
	t.Helper()

	users := NewUserRepository(db)
	users.cost = bcrypt.MinCost

	return testRepos{
		db:         db,
		users:      users,
		categories: NewCategoryRepository(db),
		sets:       NewSetRepository(db),
		questions:  NewQuestionRepository(db),
		comments:   NewCommentRepository(db),
	}
}

func (r testRepos) mustUser(t *testing.T, username string) int64 {
	t.Helper()
	id, err := r.users.CreateUser(context.Background(), username, "password")
	require.NoError(t, err)
	return id
}

func (r testRepos) mustSet(t *testing.T, userID int64, title, description string, categoryID *int64) int64 {
	t.Helper()
	id, err := r.sets.CreateSet(context.Background(), userID, title, description, categoryID)
	require.NoError(t, err)
	return id
}

func (r testRepos) mustQuestion(t *testing.T, setID int64, text string, correct int) int64 {
	t.Helper()
	id, err := r.questions.AddQuestion(context.Background(), setID, entity.Question{
		QuestionText:  text,
		Answer1:       "one",
		Answer2:       "two",
		Answer3:       "three",
		CorrectAnswer: correct,
	})
	require.NoError(t, err)
	return id
}

func int64Ptr(v int64) *int64 {
	return &v
}
