package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the record store: a generic REST collection server with
// list, filter, get, create, whole-record replace and delete. There is no
// PATCH verb; every mutation sends the complete document.
type Client struct {
	base *url.URL
	httc *http.Client
}

// New builds a client against the injected base URL, e.g.
// "http://localhost:6836/api" in development.
func New(baseURL string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse record store url: %w", err)
	}
	return &Client{base: base, httc: http.DefaultClient}, nil
}

// do issues one request and decodes the JSON response into out (unless out
// is nil). A 404 is reported through the notFound return so callers can
// decide whether it means "empty result" or a real failure.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (notFound bool, err error) {
	op := method + " " + path

	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return false, &PersistenceError{Op: op, Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return false, &PersistenceError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httc.Do(req)
	if err != nil {
		return false, &PersistenceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return true, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, &PersistenceError{Op: op, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, &PersistenceError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return false, nil
}

// Users fetches the full user collection.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	notFound, err := c.do(ctx, http.MethodGet, "users", nil, nil, &users)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}
	return users, nil
}

// UserByID returns (nil, nil) when no such user exists.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	var user User
	notFound, err := c.do(ctx, http.MethodGet, "users/"+id, nil, nil, &user)
	if err != nil || notFound {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, user User) (*User, error) {
	var created User
	notFound, err := c.do(ctx, http.MethodPost, "users", nil, user, &created)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, &PersistenceError{Op: "POST users", Status: http.StatusNotFound}
	}
	return &created, nil
}

// ReplaceUser sends the whole record; the store's returned representation is
// authoritative for the final shape.
func (c *Client) ReplaceUser(ctx context.Context, user User) (*User, error) {
	var updated User
	notFound, err := c.do(ctx, http.MethodPut, "users/"+user.ID, nil, user, &updated)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, &PersistenceError{Op: "PUT users/" + user.ID, Status: http.StatusNotFound}
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "users/"+id, nil, nil, nil)
	return err
}

// Posts fetches the full post collection.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	notFound, err := c.do(ctx, http.MethodGet, "posts", nil, nil, &posts)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}
	return posts, nil
}

// PostsByAuthor filters server-side. The store answers a filtered list that
// matches nothing with a 404, which is an empty result here, not an error.
func (c *Client) PostsByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	var posts []Post
	q := url.Values{"authorId": {authorID}}
	notFound, err := c.do(ctx, http.MethodGet, "posts", q, nil, &posts)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}
	return posts, nil
}

// PostByID returns (nil, nil) when no such post exists.
func (c *Client) PostByID(ctx context.Context, id string) (*Post, error) {
	var post Post
	notFound, err := c.do(ctx, http.MethodGet, "posts/"+id, nil, nil, &post)
	if err != nil || notFound {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, post Post) (*Post, error) {
	var created Post
	notFound, err := c.do(ctx, http.MethodPost, "posts", nil, post, &created)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, &PersistenceError{Op: "POST posts", Status: http.StatusNotFound}
	}
	return &created, nil
}

// ReplacePost sends the whole record, comments and all.
func (c *Client) ReplacePost(ctx context.Context, post Post) (*Post, error) {
	var updated Post
	notFound, err := c.do(ctx, http.MethodPut, "posts/"+post.ID, nil, post, &updated)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, &PersistenceError{Op: "PUT posts/" + post.ID, Status: http.StatusNotFound}
	}
	return &updated, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "posts/"+id, nil, nil, nil)
	return err
}
