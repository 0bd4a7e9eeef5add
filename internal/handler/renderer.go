package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"quizhub/internal/entity"
	"quizhub/internal/middleware"
	"quizhub/internal/repository"
	"quizhub/internal/templates"
)

var pageNames = []string{
	"index.html",
	"register.html",
	"login.html",
	"new_set.html",
	"show_set.html",
	"edit_set.html",
	"search.html",
	"attempt_set.html",
	"attempt_results.html",
	"profile.html",
	"error.html",
}

var funcMap = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"inc": func(i int) int {
		return i + 1
	},
	"answerNumbers": func() []int {
		numbers := make([]int, entity.AnswerCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers
	},
}

// Renderer executes the page templates. Every page is parsed together
// with layout.html.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *middleware.Sessions
}

func NewRenderer(sessions *middleware.Sessions) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templates.Pages, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, sessions: sessions}, nil
}

// Render writes page with status 200. Queued flashes and any extra
// messages are shown at the top of the page.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, data map[string]interface{}, messages ...string) {
	rd.render(w, r, http.StatusOK, page, data, messages)
}

func (rd *Renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]interface{}, messages []string) {
	tmpl, ok := rd.pages[page]
	if !ok {
		log.Printf("render: unknown page %s", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Quizhub"
	}
	data["Viewer"] = middleware.ViewerFrom(r.Context())
	data["Flashes"] = append(rd.sessions.PopFlashes(w, r), messages...)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("render %s: write: %v", page, err)
	}
}

// Error renders the error page with the given status.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.render(w, r, status, "error.html", map[string]interface{}{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	}, nil)
}

func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.Error(w, r, http.StatusNotFound, "The page does not exist.")
}

// Fail maps err to a response: missing rows are 404, access errors 403 and
// anything else a logged 500.
func (rd *Renderer) Fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		rd.NotFound(w, r)
	case errors.Is(err, errForbidden):
		rd.Error(w, r, http.StatusForbidden, "You are not allowed to do that.")
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		rd.Error(w, r, http.StatusInternalServerError, "Something went wrong.")
	}
}

// Redirect queues messages as flashes and redirects with 303.
func (rd *Renderer) Redirect(w http.ResponseWriter, r *http.Request, target string, messages ...string) {
	if err := rd.sessions.Flash(w, r, messages...); err != nil {
		log.Printf("flash: %v", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
