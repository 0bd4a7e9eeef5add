package repository

import (
	"context"

	"quizhub/internal/database"
	"quizhub/internal/entity"
)

type CategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories := make([]entity.Category, 0)
	err := r.db.Query(ctx, &categories, `SELECT id, name FROM categories ORDER BY name`)
	return categories, err
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (entity.Category, error) {
	var category entity.Category
	err := r.db.Get(ctx, &category, `SELECT id, name FROM categories WHERE id = ?`, id)
	return category, err
}
