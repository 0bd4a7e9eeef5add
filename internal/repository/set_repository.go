package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"quizhub/internal/config"
	"quizhub/internal/database"
	"quizhub/internal/entity"
)

var setListColumns = []string{
	"s.id",
	"s.title",
	"s.description",
	"s.user_id",
	"s.category_id",
	"s.created_at",
	"c.name AS category_name",
	"u.username",
	"(SELECT COUNT(*) FROM questions q WHERE q.set_id = s.id) AS question_count",
}

type SetRepository struct {
	db  *database.DB
	now func() time.Time
}

func NewSetRepository(db *database.DB) *SetRepository {
	return &SetRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateSet validates and stores a new set. Nothing is written when
// validation fails.
func (r *SetRepository) CreateSet(ctx context.Context, userID int64, title, description string, categoryID *int64) (int64, error) {
	set := entity.Set{Title: title, Description: description}
	if err := set.Validate(); err != nil {
		return 0, err
	}

	id, err := r.db.Execute(ctx, `
		INSERT INTO sets (title, description, user_id, category_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, title, description, userID, categoryID, r.now())
	if err != nil {
		return 0, fmt.Errorf("create set: %w", err)
	}
	return id, nil
}

func (r *SetRepository) GetSet(ctx context.Context, id int64) (entity.Set, error) {
	query, args, err := r.selectSets().Where(sq.Eq{"s.id": id}).ToSql()
	if err != nil {
		return entity.Set{}, err
	}

	var set entity.Set
	if err := r.db.Get(ctx, &set, query, args...); err != nil {
		return entity.Set{}, err
	}
	return set, nil
}

// ListSets returns every set, newest first.
func (r *SetRepository) ListSets(ctx context.Context) ([]entity.Set, error) {
	return r.list(ctx, r.selectSets().OrderBy("s.id DESC"))
}

func (r *SetRepository) ListUserSets(ctx context.Context, userID int64) ([]entity.Set, error) {
	return r.list(ctx, r.selectSets().
		Where(sq.Eq{"s.user_id": userID}).
		OrderBy("s.created_at DESC", "s.id DESC"))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchSets matches keyword as a substring of the title or description and,
// when categoryID is set, also requires that category. LIKE wildcards in
// keyword match literally.
func (r *SetRepository) SearchSets(ctx context.Context, keyword string, categoryID *int64) ([]entity.Set, error) {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"

	// sqlite LIKE is already case insensitive for ASCII.
	op := "LIKE"
	if r.db.Driver() == config.DriverPostgres {
		op = "ILIKE"
	}
	match := sq.Or{
		sq.Expr("s.title "+op+` ? ESCAPE '\'`, pattern),
		sq.Expr("s.description "+op+` ? ESCAPE '\'`, pattern),
	}

	builder := r.selectSets().Where(match)
	if categoryID != nil {
		builder = builder.Where(sq.Eq{"s.category_id": *categoryID})
	}
	return r.list(ctx, builder.OrderBy("s.id DESC"))
}

func (r *SetRepository) UpdateSet(ctx context.Context, id int64, title, description string, categoryID *int64) error {
	set := entity.Set{Title: title, Description: description}
	if err := set.Validate(); err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx, `
		UPDATE sets SET title = ?, description = ?, category_id = ? WHERE id = ?
	`, title, description, categoryID, id)
	if err != nil {
		return fmt.Errorf("update set %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSet removes the set together with its questions and comments in one
// transaction. Children go first so the result does not depend on the
// schema's ON DELETE CASCADE being enforced.
func (r *SetRepository) DeleteSet(ctx context.Context, id int64) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM questions WHERE set_id = ?`,
			`DELETE FROM comments WHERE set_id = ?`,
			`DELETE FROM sets WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, tx.Rebind(stmt), id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete set %d: %w", id, err)
	}
	return nil
}

func (r *SetRepository) selectSets() sq.SelectBuilder {
	return sq.Select(setListColumns...).
		From("sets s").
		Join("users u ON s.user_id = u.id").
		LeftJoin("categories c ON s.category_id = c.id")
}

func (r *SetRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]entity.Set, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	sets := make([]entity.Set, 0)
	if err := r.db.Query(ctx, &sets, query, args...); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}
