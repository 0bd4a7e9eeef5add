package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizhub/internal/config"
	"quizhub/internal/database"
	"quizhub/internal/entity"
)

func TestCreateSetRejectsEmptyFieldsBeforeWriting(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	sets := NewSetRepository(database.New(sqlx.NewDb(conn, config.DriverSQLite)))
	ctx := context.Background()

	var vErr *entity.ValidationError
	_, err = sets.CreateSet(ctx, 1, "", "description", nil)
	assert.True(t, errors.As(err, &vErr))
	_, err = sets.CreateSet(ctx, 1, "title", "   ", nil)
	assert.True(t, errors.As(err, &vErr))

	// No statement may reach the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndGetSet(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Capitals", "European capitals", int64Ptr(2))
	repos.mustQuestion(t, setID, "Capital of Finland?", 1)

	set, err := repos.sets.GetSet(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", set.Title)
	assert.Equal(t, "European capitals", set.Description)
	assert.Equal(t, userID, set.UserID)
	assert.Equal(t, "alice", set.Username)
	assert.Equal(t, "Historia", set.Category())
	assert.True(t, set.HasCategory(2))
	assert.Equal(t, 1, set.QuestionCount)
	assert.False(t, set.CreatedAt.IsZero())

	_, err = repos.sets.GetSet(ctx, setID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSetWithoutCategory(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Misc", "Anything goes", nil)

	set, err := repos.sets.GetSet(context.Background(), setID)
	require.NoError(t, err)
	assert.Nil(t, set.CategoryID)
	assert.Equal(t, "", set.Category())
}

func TestListSetsNewestFirst(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	alice := repos.mustUser(t, "alice")
	bob := repos.mustUser(t, "bob")
	first := repos.mustSet(t, alice, "First", "one", nil)
	second := repos.mustSet(t, bob, "Second", "two", int64Ptr(1))
	third := repos.mustSet(t, alice, "Third", "three", nil)

	sets, err := repos.sets.ListSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.Equal(t, []int64{third, second, first}, []int64{sets[0].ID, sets[1].ID, sets[2].ID})

	own, err := repos.sets.ListUserSets(ctx, alice)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, third, own[0].ID)
	assert.Equal(t, first, own[1].ID)
}

func TestSearchSets(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	mathHistory := repos.mustSet(t, userID, "Math history", "Famous mathematicians", int64Ptr(2))
	repos.mustSet(t, userID, "Math drills", "Arithmetic", int64Ptr(3))
	descOnly := repos.mustSet(t, userID, "Greeks", "Ancient math and philosophy", int64Ptr(2))
	repos.mustSet(t, userID, "Olympics", "Sports history", int64Ptr(2))

	results, err := repos.sets.SearchSets(ctx, "math", int64Ptr(2))
	require.NoError(t, err)
	ids := make([]int64, 0, len(results))
	for _, set := range results {
		ids = append(ids, set.ID)
		assert.True(t, set.HasCategory(2))
	}
	assert.Equal(t, []int64{descOnly, mathHistory}, ids)

	all, err := repos.sets.SearchSets(ctx, "math", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCategory, err := repos.sets.SearchSets(ctx, "", int64Ptr(3))
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Math drills", byCategory[0].Title)

	none, err := repos.sets.SearchSets(ctx, "chemistry", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchSetsMatchesWildcardsLiterally(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	percent := repos.mustSet(t, userID, "Percentages", "What is 50% of 80?", nil)
	underscore := repos.mustSet(t, userID, "Identifiers", "snake_case names", nil)
	repos.mustSet(t, userID, "Plain", "Nothing special", nil)

	results, err := repos.sets.SearchSets(ctx, "%", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, percent, results[0].ID)

	results, err = repos.sets.SearchSets(ctx, "_", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, underscore, results[0].ID)

	results, err = repos.sets.SearchSets(ctx, `\`, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpdateSet(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	userID := repos.mustUser(t, "alice")
	setID := repos.mustSet(t, userID, "Old", "old description", int64Ptr(1))

	require.NoError(t, repos.sets.UpdateSet(ctx, setID, "New", "new description", nil))

	set, err := repos.sets.GetSet(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, "New", set.Title)
	assert.Equal(t, "new description", set.Description)
	assert.Nil(t, set.CategoryID)

	var vErr *entity.ValidationError
	err = repos.sets.UpdateSet(ctx, setID, "", "x", nil)
	assert.True(t, errors.As(err, &vErr))

	assert.ErrorIs(t, repos.sets.UpdateSet(ctx, setID+50, "t", "d", nil), ErrNotFound)
}

func TestDeleteSetRemovesQuestionsAndComments(t *testing.T) {
	repos := newTestRepos(t, newTestSQLiteDB(t))
	ctx := context.Background()

	owner := repos.mustUser(t, "alice")
	reader := repos.mustUser(t, "bob")
	setID := repos.mustSet(t, owner, "Doomed", "to be deleted", nil)
	keepID := repos.mustSet(t, owner, "Kept", "stays", nil)

	repos.mustQuestion(t, setID, "Q1", 1)
	repos.mustQuestion(t, setID, "Q2", 2)
	repos.mustQuestion(t, keepID, "Q3", 3)
	_, err := repos.comments.AddComment(ctx, setID, reader, "great")
	require.NoError(t, err)
	_, err = repos.comments.AddComment(ctx, keepID, reader, "also great")
	require.NoError(t, err)

	require.NoError(t, repos.sets.DeleteSet(ctx, setID))

	_, err = repos.sets.GetSet(ctx, setID)
	assert.ErrorIs(t, err, ErrNotFound)

	questions, err := repos.questions.CountQuestions(ctx, setID)
	require.NoError(t, err)
	assert.Zero(t, questions)

	comments, err := repos.comments.CountComments(ctx, setID)
	require.NoError(t, err)
	assert.Zero(t, comments)

	kept, err := repos.questions.CountQuestions(ctx, keepID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept)
}

func TestDeleteSetDeletesChildrenFirstInOneTransaction(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	sets := NewSetRepository(database.New(sqlx.NewDb(conn, config.DriverSQLite)))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE set_id = ?`)).
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE set_id = ?`)).
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sets WHERE id = ?`)).
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sets.DeleteSet(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSetRollsBackOnFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	sets := NewSetRepository(database.New(sqlx.NewDb(conn, config.DriverSQLite)))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM questions`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM comments`).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	assert.Error(t, sets.DeleteSet(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}
