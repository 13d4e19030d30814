// Package blog implements the domain operations: named units that combine
// record store calls with cache invalidation and session updates. Each one
// is a single request/response round trip from the caller's point of view;
// there are no multi-step sagas.
package blog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"inkwell/cache"
	"inkwell/recordstore"
	"inkwell/session"
	"inkwell/uploader"
)

// Cache keys. Exported so the view layer can subscribe to the ones it
// renders.
func KeyAllPosts() string               { return "posts" }
func KeyAllUsers() string               { return "users" }
func KeyPost(id string) string          { return cache.Key("post", id) }
func KeyUser(id string) string          { return cache.Key("user", id) }
func KeyPostsByAuthor(id string) string { return cache.Key("posts", "author", id) }

var ErrNotSignedIn = errors.New("not signed in")

type Service struct {
	Store    *recordstore.Client
	Cache    *cache.Store
	Session  *session.Store
	Uploader *uploader.Client
}

func NewService(store *recordstore.Client, c *cache.Store, sess *session.Store, up *uploader.Client) *Service {
	return &Service{Store: store, Cache: c, Session: sess, Uploader: up}
}

// AllPosts returns every post in the store, newest first. Bodies stay in
// their at-rest encoded form; decode at render time.
func (s *Service) AllPosts(ctx context.Context) ([]recordstore.Post, error) {
	return cache.Fetch(ctx, s.Cache, KeyAllPosts(), func(ctx context.Context) ([]recordstore.Post, error) {
		posts, err := s.Store.Posts(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt > posts[j].CreatedAt
		})
		return posts, nil
	})
}

// PublicPosts is AllPosts filtered to what the home feed may show.
func (s *Service) PublicPosts(ctx context.Context) ([]recordstore.Post, error) {
	posts, err := s.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]recordstore.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsPublic {
			public = append(public, p)
		}
	}
	return public, nil
}

func (s *Service) AllUsers(ctx context.Context) ([]recordstore.User, error) {
	return cache.Fetch(ctx, s.Cache, KeyAllUsers(), func(ctx context.Context) ([]recordstore.User, error) {
		return s.Store.Users(ctx)
	})
}

// PostByID returns (nil, nil) when the post doesn't exist.
func (s *Service) PostByID(ctx context.Context, id string) (*recordstore.Post, error) {
	return cache.Fetch(ctx, s.Cache, KeyPost(id), func(ctx context.Context) (*recordstore.Post, error) {
		return s.Store.PostByID(ctx, id)
	})
}

// Author returns (nil, nil) when the user doesn't exist. Other users'
// records are read-only projections; only the session owns a mutable copy.
func (s *Service) Author(ctx context.Context, id string) (*recordstore.User, error) {
	return cache.Fetch(ctx, s.Cache, KeyUser(id), func(ctx context.Context) (*recordstore.User, error) {
		return s.Store.UserByID(ctx, id)
	})
}

func (s *Service) PostsByAuthor(ctx context.Context, authorID string) ([]recordstore.Post, error) {
	return cache.Fetch(ctx, s.Cache, KeyPostsByAuthor(authorID), func(ctx context.Context) ([]recordstore.Post, error) {
		return s.Store.PostsByAuthor(ctx, authorID)
	})
}

// Favorites resolves the acting user's favorite post ids against the post
// collection, preserving the favorites list order.
func (s *Service) Favorites(ctx context.Context, user *recordstore.User) ([]recordstore.Post, error) {
	if user == nil {
		return nil, nil
	}
	posts, err := s.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]recordstore.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	var favs []recordstore.Post
	for _, id := range user.Favorites {
		if p, ok := byID[id]; ok {
			favs = append(favs, p)
		}
	}
	return favs, nil
}

type SearchResults struct {
	Posts []recordstore.Post
	Users []recordstore.User
}

// Search matches public posts by title and users by display name,
// case-insensitively. An empty query matches nothing.
func (s *Service) Search(ctx context.Context, query string) (SearchResults, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return SearchResults{}, nil
	}

	posts, err := s.PublicPosts(ctx)
	if err != nil {
		return SearchResults{}, err
	}
	users, err := s.AllUsers(ctx)
	if err != nil {
		return SearchResults{}, err
	}

	var res SearchResults
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), query) {
			res.Posts = append(res.Posts, p)
		}
	}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), query) {
			res.Users = append(res.Users, u)
		}
	}
	return res, nil
}
