package handler

import (
	"errors"
	"log"
	"net/http"

	"quizhub/internal/entity"
	"quizhub/internal/repository"
)

type RegistrationHandler struct {
	userRepo *repository.UserRepository
	render   *Renderer
}

func NewRegistrationHandler(userRepo *repository.UserRepository, render *Renderer) *RegistrationHandler {
	return &RegistrationHandler{userRepo: userRepo, render: render}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "")
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := parseRegistrationForm(r)

	if form.Password1 != form.Password2 {
		h.page(w, r, form.Username, "Passwords do not match.")
		return
	}

	userID, err := h.userRepo.CreateUser(r.Context(), form.Username, form.Password1)
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.page(w, r, form.Username, vErr.Message)
		return
	case errors.Is(err, repository.ErrUsernameTaken):
		h.page(w, r, form.Username, "Username is already taken.")
		return
	case err != nil:
		h.render.Fail(w, r, err)
		return
	}

	log.Printf("registered user %s (id %d)", form.Username, userID)
	h.render.Redirect(w, r, "/login", "Account created. You can log in now.")
}

func (h *RegistrationHandler) page(w http.ResponseWriter, r *http.Request, username string, messages ...string) {
	h.render.Render(w, r, "register.html", map[string]interface{}{
		"Title":    "Register",
		"Username": username,
	}, messages...)
}
