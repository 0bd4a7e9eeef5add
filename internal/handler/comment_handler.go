package handler

import (
	"errors"
	"fmt"
	"net/http"

	"quizhub/internal/database"
	"quizhub/internal/entity"
	"quizhub/internal/middleware"
	"quizhub/internal/repository"
)

type CommentHandler struct {
	setRepo     *repository.SetRepository
	commentRepo *repository.CommentRepository
	render      *Renderer
}

func NewCommentHandler(setRepo *repository.SetRepository, commentRepo *repository.CommentRepository, render *Renderer) *CommentHandler {
	return &CommentHandler{setRepo: setRepo, commentRepo: commentRepo, render: render}
}

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return
	}

	if _, err := h.setRepo.GetSet(r.Context(), id); err != nil {
		h.render.Fail(w, r, err)
		return
	}
	back := fmt.Sprintf("/set/%d", id)

	viewer := middleware.ViewerFrom(r.Context())
	_, err := h.commentRepo.AddComment(r.Context(), id, viewer.UserID, r.PostFormValue("comment_text"))

	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.render.Redirect(w, r, back, capitalize(vErr.Message)+".")
	case errors.Is(err, database.ErrForeignKeyViolation):
		// The set was deleted after the lookup above.
		h.render.NotFound(w, r)
	case err != nil:
		h.render.Fail(w, r, err)
	default:
		h.render.Redirect(w, r, back, "Comment added.")
	}
}
