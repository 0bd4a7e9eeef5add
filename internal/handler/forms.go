package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"quizhub/internal/entity"
)

type registrationForm struct {
	Username  string
	Password1 string
	Password2 string
}

func parseRegistrationForm(r *http.Request) registrationForm {
	return registrationForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	}
}

type loginForm struct {
	Username string
	Password string
	NextPage string
}

func parseLoginForm(r *http.Request) loginForm {
	return loginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		NextPage: r.PostFormValue("next_page"),
	}
}

type setForm struct {
	Title       string
	Description string
	// CategoryID is 0 when no category was chosen.
	CategoryID int64
}

func parseSetForm(r *http.Request) setForm {
	return setForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		CategoryID:  parseID(r.PostFormValue("category_id")),
	}
}

func (f setForm) Category() *int64 {
	if f.CategoryID <= 0 {
		return nil
	}
	id := f.CategoryID
	return &id
}

type questionForm struct {
	QuestionText  string
	Answer1       string
	Answer2       string
	Answer3       string
	CorrectAnswer int
}

// parseQuestionForm reads the question fields. A correct_answer that is not
// a number is kept as 0 so that validation rejects it.
func parseQuestionForm(r *http.Request) questionForm {
	correct, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("correct_answer")))
	if err != nil {
		correct = 0
	}
	return questionForm{
		QuestionText:  strings.TrimSpace(r.PostFormValue("question_text")),
		Answer1:       strings.TrimSpace(r.PostFormValue("answer1")),
		Answer2:       strings.TrimSpace(r.PostFormValue("answer2")),
		Answer3:       strings.TrimSpace(r.PostFormValue("answer3")),
		CorrectAnswer: correct,
	}
}

func (f questionForm) Question(id, setID int64) entity.Question {
	return entity.Question{
		ID:            id,
		SetID:         setID,
		QuestionText:  f.QuestionText,
		Answer1:       f.Answer1,
		Answer2:       f.Answer2,
		Answer3:       f.Answer3,
		CorrectAnswer: f.CorrectAnswer,
	}
}

// parseAttemptForm reads question_<id> for every question. Missing or
// unparsable answers become entity.NoAnswer.
func parseAttemptForm(r *http.Request, questions []entity.Question) map[int64]int {
	answers := make(map[int64]int, len(questions))
	for _, q := range questions {
		answer, err := strconv.Atoi(r.PostFormValue(fmt.Sprintf("question_%d", q.ID)))
		if err != nil {
			answer = entity.NoAnswer
		}
		answers[q.ID] = answer
	}
	return answers
}

type searchForm struct {
	Query      string
	CategoryID int64
}

func parseSearchForm(r *http.Request) searchForm {
	q := r.URL.Query()
	return searchForm{
		Query:      strings.TrimSpace(q.Get("query")),
		CategoryID: parseID(q.Get("category")),
	}
}

func (f searchForm) Category() *int64 {
	if f.CategoryID <= 0 {
		return nil
	}
	id := f.CategoryID
	return &id
}

func (f searchForm) Empty() bool {
	return f.Query == "" && f.CategoryID <= 0
}

// parseID returns the positive integer in s, or 0.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// pathID reads the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	id := parseID(r.PathValue("id"))
	return id, id > 0
}

// safeNextPage keeps local absolute paths and falls back to "/".
func safeNextPage(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
