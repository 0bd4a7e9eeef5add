package handler

import (
	"net/http"

	"quizhub/internal/entity"
	"quizhub/internal/repository"
)

type SearchHandler struct {
	setRepo      *repository.SetRepository
	categoryRepo *repository.CategoryRepository
	render       *Renderer
}

func NewSearchHandler(setRepo *repository.SetRepository, categoryRepo *repository.CategoryRepository, render *Renderer) *SearchHandler {
	return &SearchHandler{setRepo: setRepo, categoryRepo: categoryRepo, render: render}
}

// Search only queries the sets when a keyword or a category is given.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	form := parseSearchForm(r)

	categories, err := h.categoryRepo.ListCategories(r.Context())
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	results := []entity.Set{}
	if !form.Empty() {
		results, err = h.setRepo.SearchSets(r.Context(), form.Query, form.Category())
		if err != nil {
			h.render.Fail(w, r, err)
			return
		}
	}

	h.render.Render(w, r, "search.html", map[string]interface{}{
		"Title":      "Search",
		"Query":      form.Query,
		"Category":   form.CategoryID,
		"Categories": categories,
		"Results":    results,
		"Searched":   !form.Empty(),
	})
}
