package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"net/url"
)

// RequireAuth lets logged in viewers through. Anonymous GET requests are
// sent to the login page with next_page set; anything else is forbidden.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ViewerFrom(r.Context()).LoggedIn() {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			target := "/login?next_page=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	})
}

// RequireCSRF checks the csrf_token form field of state changing requests
// against the token issued at login.
func RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		expected := ViewerFrom(r.Context()).CSRFToken
		got := r.PostFormValue("csrf_token")
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			log.Printf("csrf: rejected %s %s", r.Method, r.URL.Path)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Protect wraps h with RequireAuth and RequireCSRF.
func Protect(h http.HandlerFunc) http.Handler {
	return RequireAuth(RequireCSRF(h))
}
