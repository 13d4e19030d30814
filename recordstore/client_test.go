package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFilteredListTreats404AsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("authorId") == "7" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		t.Errorf("unexpected request: %s", r.URL)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	posts, err := c.PostsByAuthor(context.Background(), "7")
	if err != nil {
		t.Fatalf("404 on a filtered list must not be an error, got %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty result, got %d posts", len(posts))
	}
}

func TestMissingPostIsNilNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	post, err := c.PostByID(context.Background(), "999")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post, got %+v", post)
	}
}

func TestServerErrorBecomesPersistenceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Users(context.Background())
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PersistenceError, got %T: %v", err, err)
	}
	if pe.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500 recorded, got %d", pe.Status)
	}
}

func TestUnreachableStoreBecomesPersistenceError(t *testing.T) {
	c, _ := New("http://127.0.0.1:1/api")
	_, err := c.Posts(context.Background())
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PersistenceError, got %T: %v", err, err)
	}
}

func TestReplacePostSendsWholeRecord(t *testing.T) {
	var received Post
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(received)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	post := Post{
		ID:       "3",
		Title:    "Title",
		Body:     EncodeBody("<p>body</p>"),
		AuthorID: "1",
		Likes:    []string{"2"},
		Comments: []Comment{{ID: "c1", PostID: "3", UserID: "2", Content: "hi"}},
	}
	updated, err := c.ReplacePost(context.Background(), post)
	if err != nil {
		t.Fatal(err)
	}
	if received.AuthorID != "1" || len(received.Comments) != 1 || len(received.Likes) != 1 {
		t.Errorf("replace did not send the whole record: %+v", received)
	}
	if updated.Title != "Title" {
		t.Errorf("expected the server representation back, got %+v", updated)
	}
}
