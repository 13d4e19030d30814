package mockstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(db))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) map[string]any {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCreateAssignsStringID(t *testing.T) {
	srv := newTestServer(t)

	doc := postJSON(t, srv.URL+"/api/posts", `{"title":"hello","authorId":"1"}`)
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		t.Fatalf("expected a server-assigned string id, got %v", doc["id"])
	}
	if doc["createdAt"] == "" {
		t.Fatal("expected a createdAt stamp")
	}
}

func TestFilteredListAnswers404WhenEmpty(t *testing.T) {
	srv := newTestServer(t)
	postJSON(t, srv.URL+"/api/posts", `{"title":"a","authorId":"1"}`)

	resp, err := http.Get(srv.URL + "/api/posts?authorId=999")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty filtered list must be 404, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/posts?authorId=1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var docs []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 match, got %d", len(docs))
	}
}

func TestUnfilteredListIsEmptyArrayNot404(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/posts")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReplaceCannotMoveDocument(t *testing.T) {
	srv := newTestServer(t)
	doc := postJSON(t, srv.URL+"/api/users", `{"name":"A","email":"a@x.com"}`)
	id := doc["id"].(string)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/users/"+id,
		strings.NewReader(`{"id":"12345","name":"B","email":"a@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var updated map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated["id"] != id {
		t.Fatalf("replace must keep the server-assigned id %s, got %v", id, updated["id"])
	}
	if updated["name"] != "B" {
		t.Fatalf("replace did not apply: %v", updated)
	}
}

func TestDeleteThenGetIs404(t *testing.T) {
	srv := newTestServer(t)
	doc := postJSON(t, srv.URL+"/api/posts", `{"title":"bye"}`)
	id := doc["id"].(string)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/posts/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/posts/" + id)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	doc := postJSON(t, srv.URL+"/api/users", `{"name":"A"}`)
	id := doc["id"].(string)

	resp, err := http.Get(srv.URL + "/api/posts/" + id)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("a users row must not be reachable as a post, got %d", resp.StatusCode)
	}
}
