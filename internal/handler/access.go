package handler

import (
	"context"
	"errors"

	"quizhub/internal/entity"
	"quizhub/internal/middleware"
	"quizhub/internal/repository"
)

var errForbidden = errors.New("forbidden")

// ownedSet loads set id and checks that viewer owns it. It returns
// repository.ErrNotFound for a missing set and errForbidden for someone
// else's.
func ownedSet(ctx context.Context, sets *repository.SetRepository, id int64) (entity.Set, error) {
	set, err := sets.GetSet(ctx, id)
	if err != nil {
		return entity.Set{}, err
	}
	if !set.OwnedBy(middleware.ViewerFrom(ctx).UserID) {
		return entity.Set{}, errForbidden
	}
	return set, nil
}
