package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"inkwell/blog"
	"inkwell/cache"
	"inkwell/mockstore"
	"inkwell/recordstore"
	"inkwell/session"
)

// newTestSite stands up the whole stack over an in-memory mockstore and
// returns a router with the same route shape as the app.
func newTestSite(t *testing.T) (*Site, *chi.Mux, *recordstore.Client) {
	t.Helper()

	db, err := mockstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	backend := httptest.NewServer(mockstore.New(db))
	t.Cleanup(backend.Close)

	client, err := recordstore.New(backend.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	sess := session.NewStore(client, filepath.Join(t.TempDir(), "logged_user.json"))
	svc := blog.NewService(client, cache.NewStore(), sess, nil)
	s := New(svc, sess)

	r := chi.NewRouter()
	r.Get("/", s.Home)
	r.HandleFunc("/login", s.Login)
	r.HandleFunc("/register", s.Register)
	r.Get("/post/{postID}", s.ViewPost)
	r.With(s.AuthProtectedMiddleware).Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.MyPosts)
		r.Post("/delete/{postID}", s.DeletePost)
	})
	r.With(s.AdminOnlyMiddleware).Route("/admin", func(r chi.Router) {
		r.Get("/", s.AdminOverview)
		r.HandleFunc("/users/{userID}/delete", s.AdminDeleteUser)
	})
	return s, r, client
}

func seedUser(t *testing.T, client *recordstore.Client, name, email, role string) *recordstore.User {
	t.Helper()
	u, err := client.CreateUser(context.Background(), recordstore.User{
		Name: name, Email: email, Password: "pw", Role: role, Favorites: []string{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func postForm(r *chi.Mux, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginWrongCredentialsAnswers401(t *testing.T) {
	_, r, client := newTestSite(t)
	seedUser(t, client, "A", "a@x.com", recordstore.RoleUser)

	w := postForm(r, "/login", url.Values{"email": {"a@x.com"}, "password": {"wrong"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatal("expected the invalid-credentials flash in the page")
	}
}

func TestLoginSuccessRedirectsToDashboard(t *testing.T) {
	s, r, client := newTestSite(t)
	seedUser(t, client, "A", "a@x.com", recordstore.RoleUser)

	w := postForm(r, "/login", url.Values{"email": {"a@x.com"}, "password": {"pw"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected /dashboard, got %q", loc)
	}
	if s.Session.Current() == nil {
		t.Fatal("session not signed in")
	}
}

func TestDashboardRedirectsSignedOutVisitors(t *testing.T) {
	_, r, _ := newTestSite(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected /login, got %q", loc)
	}
}

func TestAdminGateRejectsRegularUsers(t *testing.T) {
	s, r, client := newTestSite(t)
	seedUser(t, client, "A", "a@x.com", recordstore.RoleUser)
	if _, err := s.Session.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("a regular user must get 403, got %d", w.Code)
	}
}

func TestAdminDeleteUserConfirmsBeforeActing(t *testing.T) {
	s, r, client := newTestSite(t)
	seedUser(t, client, "Root", "root@x.com", recordstore.RoleAdmin)
	target := seedUser(t, client, "T", "t@x.com", recordstore.RoleUser)
	if _, err := s.Session.Login(context.Background(), "root@x.com", "pw"); err != nil {
		t.Fatal(err)
	}

	// The GET only shows the confirmation page.
	req := httptest.NewRequest(http.MethodGet, "/admin/users/"+target.ID+"/delete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected the confirm page, got %d", w.Code)
	}
	if still, _ := client.UserByID(context.Background(), target.ID); still == nil {
		t.Fatal("GET must not delete anything")
	}

	// The confirmed POST deletes.
	w = postForm(r, "/admin/users/"+target.ID+"/delete", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after delete, got %d", w.Code)
	}
	if gone, _ := client.UserByID(context.Background(), target.ID); gone != nil {
		t.Fatal("user still present after confirmed delete")
	}
}

func TestDeletePostRequiresOwnership(t *testing.T) {
	s, r, client := newTestSite(t)
	seedUser(t, client, "A", "a@x.com", recordstore.RoleUser)
	other := seedUser(t, client, "B", "b@x.com", recordstore.RoleUser)

	post, err := client.CreatePost(context.Background(), recordstore.Post{
		Title: "Not yours", AuthorID: other.ID, IsPublic: true, Likes: []string{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Session.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}

	w := postForm(r, "/dashboard/delete/"+post.ID, url.Values{})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for someone else's post, got %d", w.Code)
	}
	if still, _ := client.PostByID(context.Background(), post.ID); still == nil {
		t.Fatal("post must survive the rejected delete")
	}
}

func TestViewMissingPostIs404(t *testing.T) {
	_, r, _ := newTestSite(t)

	req := httptest.NewRequest(http.MethodGet, "/post/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmailAnswers409(t *testing.T) {
	_, r, client := newTestSite(t)
	seedUser(t, client, "A", "a@x.com", recordstore.RoleUser)

	w := postForm(r, "/register", url.Values{
		"name": {"B"}, "email": {"a@x.com"}, "password": {"pw"},
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}
