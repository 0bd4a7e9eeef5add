package handler

import (
	"context"
	"fmt"
	"net/http"

	"quizhub/internal/entity"
	"quizhub/internal/repository"
)

type QuestionHandler struct {
	setRepo      *repository.SetRepository
	questionRepo *repository.QuestionRepository
	render       *Renderer
}

func NewQuestionHandler(setRepo *repository.SetRepository, questionRepo *repository.QuestionRepository, render *Renderer) *QuestionHandler {
	return &QuestionHandler{setRepo: setRepo, questionRepo: questionRepo, render: render}
}

func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	question, ok := h.ownedQuestion(w, r)
	if !ok {
		return
	}
	back := fmt.Sprintf("/edit_set/%d", question.SetID)

	form := parseQuestionForm(r)
	err := h.questionRepo.UpdateQuestion(r.Context(), form.Question(question.ID, question.SetID))
	if message, ok := userMessage(err); ok {
		h.render.Redirect(w, r, back, message)
		return
	}
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	h.render.Redirect(w, r, back, "Question updated.")
}

func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	question, ok := h.ownedQuestion(w, r)
	if !ok {
		return
	}

	if err := h.questionRepo.DeleteQuestion(r.Context(), question.ID); err != nil {
		h.render.Fail(w, r, err)
		return
	}

	h.render.Redirect(w, r, fmt.Sprintf("/edit_set/%d", question.SetID), "Question deleted.")
}

// ownedQuestion loads the question named by the path and checks that the
// viewer owns its set. It writes the error response itself.
func (h *QuestionHandler) ownedQuestion(w http.ResponseWriter, r *http.Request) (entity.Question, bool) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return entity.Question{}, false
	}

	question, err := h.loadOwned(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return entity.Question{}, false
	}
	return question, true
}

func (h *QuestionHandler) loadOwned(ctx context.Context, id int64) (entity.Question, error) {
	question, err := h.questionRepo.GetQuestion(ctx, id)
	if err != nil {
		return entity.Question{}, err
	}
	if _, err := ownedSet(ctx, h.setRepo, question.SetID); err != nil {
		return entity.Question{}, err
	}
	return question, nil
}
