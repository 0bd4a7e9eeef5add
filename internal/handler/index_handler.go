package handler

import (
	"net/http"

	"quizhub/internal/repository"
)

type IndexHandler struct {
	setRepo *repository.SetRepository
	render  *Renderer
}

func NewIndexHandler(setRepo *repository.SetRepository, render *Renderer) *IndexHandler {
	return &IndexHandler{setRepo: setRepo, render: render}
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	sets, err := h.setRepo.ListSets(r.Context())
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	h.render.Render(w, r, "index.html", map[string]interface{}{
		"Title": "Question sets",
		"Sets":  sets,
	})
}
