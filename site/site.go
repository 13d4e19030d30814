// Package site is the view layer: it renders entities from the query cache
// and session store, and dispatches domain operations on user intent. It is
// also the enforcement point for "who may do what"; the domain layer and
// the record store check nothing.
package site

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	g "github.com/maragudk/gomponents"

	"inkwell/blog"
	"inkwell/constants"
	"inkwell/recordstore"
	"inkwell/session"
	"inkwell/templates"
	"inkwell/uploader"
)

type Site struct {
	Blog    *blog.Service
	Session *session.Store
}

func New(b *blog.Service, s *session.Store) *Site {
	return &Site{Blog: b, Session: s}
}

func (s *Site) props(title string) templates.LayoutProps {
	return templates.LayoutProps{
		Title:       title + " · " + constants.APP_NAME,
		CurrentUser: s.Session.Current(),
	}
}

func (s *Site) render(w http.ResponseWriter, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := node.Render(w); err != nil {
		log.Printf("render error: %v", err)
	}
}

// renderFailure maps the error taxonomy onto a human-readable page. A
// persistence failure leaves prior state untouched, so the page offers a
// retry back to where the user came from.
func (s *Site) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)

	retry := r.Referer()
	message := "Something unexpected happened. Please try again."
	status := http.StatusInternalServerError

	var pe *recordstore.PersistenceError
	var ue *uploader.UploadError
	switch {
	case errors.As(err, &pe):
		message = "The data service is not responding. Nothing was changed, so it is safe to try again."
		status = http.StatusBadGateway
	case errors.As(err, &ue):
		message = "An image failed to upload, so the post was not saved. Please try again."
		status = http.StatusBadGateway
	case errors.Is(err, blog.ErrNotSignedIn):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ErrorPage(s.props("Error"), message, retry).Render(w); err != nil {
		log.Printf("render error: %v", err)
	}
}

func (s *Site) notFound(w http.ResponseWriter, what string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	page := templates.ErrorPage(s.props("Not found"), what+" was not found. It may have been removed.", "/")
	if err := page.Render(w); err != nil {
		log.Printf("render error: %v", err)
	}
}

// AuthProtectedMiddleware redirects signed-out visitors to the login page.
func (s *Site) AuthProtectedMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Session.Current() == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnlyMiddleware gates the admin console. This is the only place the
// admin role is checked before moderation operations run.
func (s *Site) AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.Session.Current()
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// excerpt strips tags from a decoded body and truncates it for the feed.
func excerpt(body string) string {
	var b strings.Builder
	inTag := false
	for _, r := range body {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.Join(strings.Fields(b.String()), " ")
	if utf8.RuneCountInString(text) > 180 {
		runes := []rune(text)
		text = string(runes[:180]) + "…"
	}
	return text
}
