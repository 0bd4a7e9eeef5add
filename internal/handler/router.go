package handler

import (
	"net/http"

	"quizhub/internal/middleware"
	"quizhub/internal/repository"
	"quizhub/internal/templates"
)

type Repositories struct {
	Users      *repository.UserRepository
	Categories *repository.CategoryRepository
	Sets       *repository.SetRepository
	Questions  *repository.QuestionRepository
	Comments   *repository.CommentRepository
}

// NewRouter registers every route. The returned handler loads the session
// before dispatching.
func NewRouter(repos Repositories, sessions *middleware.Sessions) (http.Handler, error) {
	render, err := NewRenderer(sessions)
	if err != nil {
		return nil, err
	}

	index := NewIndexHandler(repos.Sets, render)
	registration := NewRegistrationHandler(repos.Users, render)
	login := NewLoginHandler(repos.Users, sessions, render)
	sets := NewSetHandler(repos.Sets, repos.Questions, repos.Comments, repos.Categories, render)
	questions := NewQuestionHandler(repos.Sets, repos.Questions, render)
	search := NewSearchHandler(repos.Sets, repos.Categories, render)
	attempts := NewAttemptHandler(repos.Sets, repos.Questions, render)
	comments := NewCommentHandler(repos.Sets, repos.Comments, render)
	profile := NewProfileHandler(repos.Users, repos.Sets, repos.Comments, render)

	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	protect := middleware.Protect

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", index.Index)

	mux.HandleFunc("GET /register", registration.RegisterPage)
	mux.HandleFunc("POST /register", registration.Register)
	mux.HandleFunc("GET /login", login.LoginPage)
	mux.HandleFunc("POST /login", login.Login)
	mux.Handle("POST /logout", protect(login.Logout))

	mux.Handle("GET /new_set", auth(sets.NewSetPage))
	mux.Handle("POST /new_set", protect(sets.CreateSet))
	mux.HandleFunc("GET /set/{id}", sets.ShowSet)
	mux.Handle("GET /edit_set/{id}", auth(sets.EditSetPage))
	mux.Handle("POST /edit_set/{id}", protect(sets.UpdateSet))
	mux.Handle("POST /remove_set/{id}", protect(sets.RemoveSet))

	mux.Handle("POST /update_question/{id}", protect(questions.UpdateQuestion))
	mux.Handle("POST /delete_question/{id}", protect(questions.DeleteQuestion))

	mux.HandleFunc("GET /search", search.Search)

	mux.HandleFunc("GET /attempt_set/{id}", attempts.AttemptPage)
	mux.HandleFunc("POST /attempt_set/{id}", attempts.SubmitAttempt)

	mux.Handle("POST /add_comment/{id}", protect(comments.AddComment))

	mux.Handle("GET /profile", auth(profile.Profile))

	mux.Handle("GET /static/", http.FileServerFS(templates.Static))

	mux.HandleFunc("/", render.NotFound)

	return sessions.Load(mux), nil
}
