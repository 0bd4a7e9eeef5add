package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"quizhub/internal/entity"
)

const (
	sessionName     = "quiz-session"
	csrfTokenLength = 32

	keyUserID    = "user_id"
	keyUsername  = "username"
	keyCSRFToken = "csrf_token"
)

type contextKey string

const viewerKey contextKey = "viewer"

// Viewer is the session state of the current request.
type Viewer struct {
	UserID    int64
	Username  string
	CSRFToken string
}

func (v Viewer) LoggedIn() bool {
	return v.UserID > 0
}

// ViewerFrom returns the viewer stored by Sessions.Load, or an anonymous
// viewer when there is none.
func ViewerFrom(ctx context.Context) Viewer {
	viewer, _ := ctx.Value(viewerKey).(Viewer)
	return viewer
}

// WithViewer returns a copy of ctx carrying viewer.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// Sessions keeps the login state and flash messages in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(key []byte, secure bool) *Sessions {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)
	return &Sessions{store: store}
}

// Load reads the session cookie and puts the Viewer into the request
// context. A cookie that fails verification is treated as no session.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.store.Get(r, sessionName)
		if err != nil {
			log.Printf("session: discarding invalid cookie: %v", err)
		}

		var viewer Viewer
		if userID, ok := session.Values[keyUserID].(int64); ok && userID > 0 {
			viewer.UserID = userID
			viewer.Username, _ = session.Values[keyUsername].(string)
			viewer.CSRFToken, _ = session.Values[keyCSRFToken].(string)
		}

		next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
	})
}

// Login stores user in the session together with a fresh CSRF token.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, user entity.User, flashes ...string) error {
	token, err := gonanoid.New(csrfTokenLength)
	if err != nil {
		return err
	}

	session := s.get(r)
	session.Values[keyUserID] = user.ID
	session.Values[keyUsername] = user.Username
	session.Values[keyCSRFToken] = token
	return s.save(w, r, session, flashes)
}

// Logout drops the login state. Flashes survive so the next page can show
// them.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request, flashes ...string) error {
	session := s.get(r)
	delete(session.Values, keyUserID)
	delete(session.Values, keyUsername)
	delete(session.Values, keyCSRFToken)
	return s.save(w, r, session, flashes)
}

// Flash queues messages for the next rendered page.
func (s *Sessions) Flash(w http.ResponseWriter, r *http.Request, messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return s.save(w, r, s.get(r), messages)
}

// PopFlashes returns and clears the queued messages.
func (s *Sessions) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	session := s.get(r)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		log.Printf("session: save after reading flashes: %v", err)
	}

	messages := make([]string, 0, len(raw))
	for _, flash := range raw {
		if message, ok := flash.(string); ok {
			messages = append(messages, message)
		}
	}
	return messages
}

func (s *Sessions) get(r *http.Request) *sessions.Session {
	// On a decode error gorilla still returns a usable new session.
	session, _ := s.store.Get(r, sessionName)
	return session
}

func (s *Sessions) save(w http.ResponseWriter, r *http.Request, session *sessions.Session, flashes []string) error {
	for _, message := range flashes {
		session.AddFlash(message)
	}
	return session.Save(r, w)
}
