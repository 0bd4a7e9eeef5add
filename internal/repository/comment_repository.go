package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"quizhub/internal/database"
	"quizhub/internal/entity"
)

const commentSelect = `
	SELECT cm.id, cm.set_id, cm.user_id, cm.comment_text, cm.created_at, u.username
	FROM comments cm
	JOIN users u ON cm.user_id = u.id
`

type CommentRepository struct {
	db  *database.DB
	now func() time.Time
}

func NewCommentRepository(db *database.DB) *CommentRepository {
	return &CommentRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// AddComment stores a trimmed, non-empty comment.
func (r *CommentRepository) AddComment(ctx context.Context, setID, userID int64, text string) (int64, error) {
	comment := entity.Comment{SetID: setID, UserID: userID, CommentText: strings.TrimSpace(text)}
	if err := comment.Validate(); err != nil {
		return 0, err
	}

	id, err := r.db.Execute(ctx, `
		INSERT INTO comments (set_id, user_id, comment_text, created_at)
		VALUES (?, ?, ?, ?)
	`, comment.SetID, comment.UserID, comment.CommentText, r.now())
	if err != nil {
		return 0, fmt.Errorf("add comment to set %d: %w", setID, err)
	}
	return id, nil
}

// ListComments returns the comments of a set, newest first.
func (r *CommentRepository) ListComments(ctx context.Context, setID int64) ([]entity.Comment, error) {
	comments := make([]entity.Comment, 0)
	err := r.db.Query(ctx, &comments, commentSelect+`
		WHERE cm.set_id = ?
		ORDER BY cm.created_at DESC, cm.id DESC
	`, setID)
	return comments, err
}

// ListCommentsForSets groups the comments of several sets by set id.
func (r *CommentRepository) ListCommentsForSets(ctx context.Context, setIDs []int64) (map[int64][]entity.Comment, error) {
	grouped := make(map[int64][]entity.Comment, len(setIDs))
	if len(setIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(commentSelect+`
		WHERE cm.set_id IN (?)
		ORDER BY cm.created_at DESC, cm.id DESC
	`, setIDs)
	if err != nil {
		return nil, err
	}

	var comments []entity.Comment
	if err := r.db.Query(ctx, &comments, query, args...); err != nil {
		return nil, err
	}
	for _, comment := range comments {
		grouped[comment.SetID] = append(grouped[comment.SetID], comment)
	}
	return grouped, nil
}

func (r *CommentRepository) CountComments(ctx context.Context, setID int64) (int, error) {
	var count int
	err := r.db.Get(ctx, &count, `SELECT COUNT(*) FROM comments WHERE set_id = ?`, setID)
	return count, err
}
