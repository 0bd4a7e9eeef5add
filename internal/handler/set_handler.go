package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"quizhub/internal/database"
	"quizhub/internal/entity"
	"quizhub/internal/middleware"
	"quizhub/internal/repository"
)

type SetHandler struct {
	setRepo      *repository.SetRepository
	questionRepo *repository.QuestionRepository
	commentRepo  *repository.CommentRepository
	categoryRepo *repository.CategoryRepository
	render       *Renderer
}

func NewSetHandler(
	setRepo *repository.SetRepository,
	questionRepo *repository.QuestionRepository,
	commentRepo *repository.CommentRepository,
	categoryRepo *repository.CategoryRepository,
	render *Renderer,
) *SetHandler {
	return &SetHandler{
		setRepo:      setRepo,
		questionRepo: questionRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		render:       render,
	}
}

func (h *SetHandler) NewSetPage(w http.ResponseWriter, r *http.Request) {
	h.newSetPage(w, r, setForm{})
}

func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	form := parseSetForm(r)
	if form.Title == "" || form.Description == "" || form.CategoryID == 0 {
		h.newSetPage(w, r, form, "Title, description and category are required.")
		return
	}

	known, err := h.knownCategory(r.Context(), form.Category())
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	if !known {
		h.newSetPage(w, r, form, unknownCategory)
		return
	}

	viewer := middleware.ViewerFrom(r.Context())
	setID, err := h.setRepo.CreateSet(r.Context(), viewer.UserID, form.Title, form.Description, form.Category())
	if message, ok := userMessage(err); ok {
		h.newSetPage(w, r, form, message)
		return
	}
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	log.Printf("set %d created by user %d", setID, viewer.UserID)
	h.render.Redirect(w, r, fmt.Sprintf("/edit_set/%d", setID), "New set created. You can add questions now.")
}

func (h *SetHandler) newSetPage(w http.ResponseWriter, r *http.Request, form setForm, messages ...string) {
	categories, err := h.categoryRepo.ListCategories(r.Context())
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	h.render.Render(w, r, "new_set.html", map[string]interface{}{
		"Title":      "New set",
		"Form":       form,
		"Categories": categories,
	}, messages...)
}

func (h *SetHandler) ShowSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return
	}

	set, err := h.setRepo.GetSet(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	questions, err := h.questionRepo.ListQuestions(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	comments, err := h.commentRepo.ListComments(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	h.render.Render(w, r, "show_set.html", map[string]interface{}{
		"Title":     set.Title,
		"Set":       set,
		"Questions": questions,
		"Comments":  comments,
		"IsOwner":   set.OwnedBy(middleware.ViewerFrom(r.Context()).UserID),
	})
}

func (h *SetHandler) EditSetPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return
	}

	set, err := ownedSet(r.Context(), h.setRepo, id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	categories, err := h.categoryRepo.ListCategories(r.Context())
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	questions, err := h.questionRepo.ListQuestions(r.Context(), id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	h.render.Render(w, r, "edit_set.html", map[string]interface{}{
		"Title":      "Edit " + set.Title,
		"Set":        set,
		"Categories": categories,
		"Questions":  questions,
	})
}

// UpdateSet saves the set fields and, when question_text is filled in,
// appends a new question from the same form.
func (h *SetHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return
	}

	set, err := ownedSet(r.Context(), h.setRepo, id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	back := fmt.Sprintf("/edit_set/%d", set.ID)

	form := parseSetForm(r)
	known, err := h.knownCategory(r.Context(), form.Category())
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	if !known {
		h.render.Redirect(w, r, back, unknownCategory)
		return
	}

	err = h.setRepo.UpdateSet(r.Context(), set.ID, form.Title, form.Description, form.Category())
	if message, ok := userMessage(err); ok {
		h.render.Redirect(w, r, back, message)
		return
	}
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	var messages []string
	if question := parseQuestionForm(r); question.QuestionText != "" {
		_, err := h.questionRepo.AddQuestion(r.Context(), set.ID, question.Question(0, set.ID))
		if message, ok := userMessage(err); ok {
			messages = append(messages, message)
		} else if err != nil {
			h.render.Fail(w, r, err)
			return
		} else {
			messages = append(messages, "Question added.")
		}
	}

	h.render.Redirect(w, r, back, append(messages, "Set updated.")...)
}

func (h *SetHandler) RemoveSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render.NotFound(w, r)
		return
	}

	set, err := ownedSet(r.Context(), h.setRepo, id)
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}
	if err := h.setRepo.DeleteSet(r.Context(), set.ID); err != nil {
		h.render.Fail(w, r, err)
		return
	}

	log.Printf("set %d deleted", set.ID)
	h.render.Redirect(w, r, "/", "Set deleted.")
}

const unknownCategory = "Unknown category."

// knownCategory reports whether id names an existing category. No category
// at all is fine.
func (h *SetHandler) knownCategory(ctx context.Context, id *int64) (bool, error) {
	if id == nil {
		return true, nil
	}
	_, err := h.categoryRepo.GetCategory(ctx, *id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// userMessage turns errors caused by user input into a message for the
// form.
func userMessage(err error) (string, bool) {
	var vErr *entity.ValidationError
	switch {
	case err == nil:
		return "", false
	case errors.As(err, &vErr):
		return capitalize(vErr.Message) + ".", true
	case errors.Is(err, database.ErrForeignKeyViolation):
		return unknownCategory, true
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
