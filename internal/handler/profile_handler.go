package handler

import (
	"net/http"

	"quizhub/internal/entity"
	"quizhub/internal/middleware"
	"quizhub/internal/repository"
)

type ProfileHandler struct {
	userRepo    *repository.UserRepository
	setRepo     *repository.SetRepository
	commentRepo *repository.CommentRepository
	render      *Renderer
}

func NewProfileHandler(
	userRepo *repository.UserRepository,
	setRepo *repository.SetRepository,
	commentRepo *repository.CommentRepository,
	render *Renderer,
) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, setRepo: setRepo, commentRepo: commentRepo, render: render}
}

type profileSet struct {
	Set      entity.Set
	Comments []entity.Comment
}

// Profile lists the viewer's own sets, each with its comments. A session
// whose user no longer exists gets a 404.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userRepo.GetUser(r.Context(), middleware.ViewerFrom(r.Context()).UserID)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	sets, err := h.setRepo.ListUserSets(r.Context(), user.ID)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	ids := make([]int64, 0, len(sets))
	for _, set := range sets {
		ids = append(ids, set.ID)
	}
	comments, err := h.commentRepo.ListCommentsForSets(r.Context(), ids)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	items := make([]profileSet, 0, len(sets))
	for _, set := range sets {
		items = append(items, profileSet{Set: set, Comments: comments[set.ID]})
	}

	h.render.Render(w, r, "profile.html", map[string]interface{}{
		"Title": user.Username,
		"User":  user,
		"Sets":  items,
	})
}
