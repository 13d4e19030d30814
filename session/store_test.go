package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"inkwell/recordstore"
)

// fakeStore is a minimal in-memory stand-in for the record store's users
// collection.
type fakeStore struct {
	users  []recordstore.User
	nextID int
	fail   bool // when set, every request answers 500
}

func (f *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.fail {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			json.NewEncoder(w).Encode(f.users)
		case r.Method == http.MethodPost && r.URL.Path == "/users":
			var u recordstore.User
			json.NewDecoder(r.Body).Decode(&u)
			f.nextID++
			u.ID = strconv.Itoa(f.nextID)
			f.users = append(f.users, u)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(u)
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/users/"):
			id := strings.TrimPrefix(r.URL.Path, "/users/")
			var u recordstore.User
			json.NewDecoder(r.Body).Decode(&u)
			u.ID = id
			for i := range f.users {
				if f.users[i].ID == id {
					f.users[i] = u
				}
			}
			json.NewEncoder(w).Encode(u)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})
}

func newTestStore(t *testing.T, f *fakeStore) (*Store, string) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	client, err := recordstore.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "logged_user.json")
	return NewStore(client, path), path
}

func TestLoginWrongPasswordIsNotFoundNotError(t *testing.T) {
	f := &fakeStore{users: []recordstore.User{
		{ID: "1", Email: "a@x.com", Password: "right", Name: "A"},
	}}
	s, path := newTestStore(t, f)

	user, err := s.Login(context.Background(), "a@x.com", "wrong")
	if err != nil {
		t.Fatalf("wrong credentials must not be an error, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected no match, got %+v", user)
	}
	if s.Current() != nil {
		t.Fatal("session must stay signed out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("nothing should have been persisted")
	}
}

func TestLoginPersistsIdentity(t *testing.T) {
	f := &fakeStore{users: []recordstore.User{
		{ID: "1", Email: "a@x.com", Password: "right", Name: "A", Favorites: []string{"9"}},
	}}
	s, path := newTestStore(t, f)

	user, err := s.Login(context.Background(), "a@x.com", "right")
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.ID != "1" {
		t.Fatalf("expected identity, got %+v", user)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("identity not persisted: %v", err)
	}
	var stored recordstore.User
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}
	if stored.ID != "1" || stored.Email != "a@x.com" {
		t.Fatalf("persisted the wrong identity: %+v", stored)
	}

	// A fresh store restores the same identity without a network call.
	f.fail = true
	client, _ := recordstore.New("http://127.0.0.1:1")
	s2 := NewStore(client, path)
	s2.Restore()
	if cur := s2.Current(); cur == nil || cur.ID != "1" {
		t.Fatalf("restore lost the identity: %+v", cur)
	}
}

func TestRestoreCorruptFileStartsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logged_user.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	client, _ := recordstore.New("http://127.0.0.1:1")
	s := NewStore(client, path)
	s.Restore()

	if s.Current() != nil {
		t.Fatal("corrupt file must not produce an identity")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("corrupt file should have been removed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := &fakeStore{users: []recordstore.User{
		{ID: "1", Email: "a@x.com", Password: "pw", Name: "A"},
	}}
	s, _ := newTestStore(t, f)

	user, err := s.Register(context.Background(), NewProfile{
		Name: "B", Email: "a@x.com", Password: "other",
	})
	if err != nil {
		t.Fatalf("duplicate is a normal outcome, got error %v", err)
	}
	if user != nil {
		t.Fatalf("expected duplicate result, got %+v", user)
	}
	if len(f.users) != 1 {
		t.Fatal("duplicate registration must not create a user")
	}
	if s.Current() != nil {
		t.Fatal("duplicate registration must not mutate the session")
	}
}

func TestRegisterCreatesAndSignsIn(t *testing.T) {
	f := &fakeStore{}
	s, _ := newTestStore(t, f)

	user, err := s.Register(context.Background(), NewProfile{
		Name: "B", Email: "b@x.com", Password: "pw",
	})
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected a created identity, got %+v", user)
	}
	if user.Role != recordstore.RoleUser {
		t.Errorf("expected default role user, got %q", user.Role)
	}
	if user.Favorites == nil || len(user.Favorites) != 0 {
		t.Errorf("expected empty favorites list, got %#v", user.Favorites)
	}
	if cur := s.Current(); cur == nil || cur.ID != user.ID {
		t.Fatal("registration should sign the new user in")
	}
}

func TestUpdateMergesAndAdoptsServerShape(t *testing.T) {
	f := &fakeStore{users: []recordstore.User{
		{ID: "1", Email: "a@x.com", Password: "pw", Name: "A", Bio: "old bio"},
	}}
	s, _ := newTestStore(t, f)
	if _, err := s.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}

	name := "Anna"
	updated, err := s.Update(context.Background(), ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Anna" {
		t.Errorf("name not updated: %+v", updated)
	}
	if updated.Bio != "old bio" {
		t.Errorf("untouched field changed: %+v", updated)
	}
	if cur := s.Current(); cur.Name != "Anna" {
		t.Errorf("in-memory identity not adopted: %+v", cur)
	}
}

func TestUpdateFailureLeavesOldIdentity(t *testing.T) {
	f := &fakeStore{users: []recordstore.User{
		{ID: "1", Email: "a@x.com", Password: "pw", Name: "A"},
	}}
	s, _ := newTestStore(t, f)
	if _, err := s.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}

	f.fail = true
	name := "Anna"
	if _, err := s.Update(context.Background(), ProfileUpdate{Name: &name}); err == nil {
		t.Fatal("expected the replace to fail")
	}
	if cur := s.Current(); cur == nil || cur.Name != "A" {
		t.Fatalf("old identity must remain active, got %+v", cur)
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	f := &fakeStore{users: []recordstore.User{
		{ID: "1", Email: "a@x.com", Password: "pw", Name: "A"},
	}}
	s, path := newTestStore(t, f)
	if _, err := s.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}

	s.Logout()
	if s.Current() != nil {
		t.Fatal("still signed in after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("session file should be gone")
	}
	s.Logout() // idempotent
}
