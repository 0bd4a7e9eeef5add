package handler

import (
	"net/http"

	"quizhub/internal/entity"
	"quizhub/internal/repository"
)

// AttemptHandler serves quiz attempts. Results are scored per request and
// never stored.
type AttemptHandler struct {
	setRepo      *repository.SetRepository
	questionRepo *repository.QuestionRepository
	render       *Renderer
}

func NewAttemptHandler(setRepo *repository.SetRepository, questionRepo *repository.QuestionRepository, render *Renderer) *AttemptHandler {
	return &AttemptHandler{setRepo: setRepo, questionRepo: questionRepo, render: render}
}

func (h *AttemptHandler) AttemptPage(w http.ResponseWriter, r *http.Request) {
	set, questions, ok := h.load(w, r)
	if !ok {
		return
	}

	h.render.Render(w, r, "attempt_set.html", map[string]interface{}{
		"Title":     set.Title,
		"Set":       set,
		"Questions": questions,
	})
}

func (h *AttemptHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	set, questions, ok := h.load(w, r)
	if !ok {
		return
	}

	result := entity.ScoreAttempt(questions, parseAttemptForm(r, questions))

	h.render.Render(w, r, "attempt_results.html", map[string]interface{}{
		"Title":  set.Title,
		"Set":    set,
		"Result": result,
	})
}

func (h *AttemptHandler) load(w http.ResponseWriter, r *http.Request) (entity.Set, []entity.Question, bool) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return entity.Set{}, nil, false
	}

	set, err := h.setRepo.GetSet(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return entity.Set{}, nil, false
	}
	questions, err := h.questionRepo.ListQuestions(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return entity.Set{}, nil, false
	}
	return set, questions, true
}
