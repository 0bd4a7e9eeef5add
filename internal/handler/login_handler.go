package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"quizhub/internal/middleware"
	"quizhub/internal/repository"
)

type LoginHandler struct {
	userRepo *repository.UserRepository
	sessions *middleware.Sessions
	render   *Renderer
}

func NewLoginHandler(userRepo *repository.UserRepository, sessions *middleware.Sessions, render *Renderer) *LoginHandler {
	return &LoginHandler{userRepo: userRepo, sessions: sessions, render: render}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next_page")
	if next == "" {
		next = localReferer(r)
	}
	h.page(w, r, "", next)
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := parseLoginForm(r)

	user, err := h.userRepo.CheckLogin(r.Context(), form.Username, form.Password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		h.page(w, r, form.Username, form.NextPage, "Wrong username or password.")
		return
	}
	if err != nil {
		h.render.Fail(w, r, err)
		return
	}

	if err := h.sessions.Login(w, r, user, "Logged in."); err != nil {
		h.render.Fail(w, r, err)
		return
	}

	log.Printf("login: %s (id %d)", user.Username, user.ID)
	http.Redirect(w, r, safeNextPage(form.NextPage), http.StatusSeeOther)
}

func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r, "You have logged out."); err != nil {
		h.render.Fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *LoginHandler) page(w http.ResponseWriter, r *http.Request, username, next string, messages ...string) {
	h.render.Render(w, r, "login.html", map[string]interface{}{
		"Title":    "Log in",
		"Username": username,
		"NextPage": safeNextPage(next),
	}, messages...)
}

// localReferer returns the path of the Referer header when it points at
// this host.
func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host {
		return ""
	}
	return ref.RequestURI()
}
