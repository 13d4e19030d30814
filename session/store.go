// Package session holds the authenticated identity: a single User record
// kept in memory and mirrored to a file on disk so it survives restarts.
// The record store has no server-side authentication, so all credential
// checking here happens client-side over data fetched in the clear. That is
// reproduced deliberately and is unsuitable for real credentials.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"sync"

	"inkwell/recordstore"
)

type Store struct {
	mu      sync.Mutex
	rs      *recordstore.Client
	path    string
	current *recordstore.User
}

// NewStore builds the one session store for the process. Construct it at
// startup, hand it to whatever needs it, call Restore before serving.
func NewStore(rs *recordstore.Client, path string) *Store {
	return &Store{rs: rs, path: path}
}

// Restore loads the persisted identity from disk. A missing file means
// signed out; an unreadable or unparsable file is removed and likewise
// means signed out. No network call is made.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("session: cannot read %s: %v", s.path, err)
		}
		return
	}

	var user recordstore.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		log.Printf("session: discarding corrupt session file %s", s.path)
		os.Remove(s.path)
		return
	}
	s.current = &user
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Store) Current() *recordstore.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.current)
}

// Login fetches the whole user collection and scans for an exact
// email+password match. A match is persisted and returned; no match returns
// (nil, nil) so callers can tell "wrong credentials" from a failed fetch.
func (s *Store) Login(ctx context.Context, email, password string) (*recordstore.User, error) {
	users, err := s.rs.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			s.adopt(&users[i])
			return cloneUser(&users[i]), nil
		}
	}
	return nil, nil
}

// Logout clears the identity in memory and on disk. It cannot fail.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	os.Remove(s.path)
}

// NewProfile is everything a registration form provides. Role and favorites
// are filled in here.
type NewProfile struct {
	Name      string
	Email     string
	Password  string
	AvatarURL string
}

// Register checks email uniqueness against the fetched user collection and
// creates the account only when the email is unseen. A duplicate returns
// (nil, nil) and leaves the session untouched.
//
// Two concurrent registrations with the same email can both pass the check;
// the store has no unique constraint to catch it. Known weakness of
// client-checked uniqueness, kept as is.
func (s *Store) Register(ctx context.Context, profile NewProfile) (*recordstore.User, error) {
	users, err := s.rs.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == profile.Email {
			return nil, nil
		}
	}

	created, err := s.rs.CreateUser(ctx, recordstore.User{
		Name:      profile.Name,
		Email:     profile.Email,
		Password:  profile.Password,
		AvatarURL: profile.AvatarURL,
		Role:      recordstore.RoleUser,
		Favorites: []string{},
	})
	if err != nil {
		return nil, err
	}
	s.adopt(created)
	return cloneUser(created), nil
}

// ProfileUpdate names exactly the fields a settings update may change. Nil
// means "leave alone".
type ProfileUpdate struct {
	Name      *string
	Password  *string
	AvatarURL *string
	Bio       *string
	CoverURL  *string
	Theme     *string
	Favorites *[]string
}

// Update merges the given fields onto the current identity and replaces the
// whole record in the store. On success the server's returned representation
// becomes the new identity in memory and on disk. On failure the old
// identity stays active; nothing is partially applied.
func (s *Store) Update(ctx context.Context, upd ProfileUpdate) (*recordstore.User, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, errors.New("session: not signed in")
	}
	merged := *cloneUser(s.current)
	s.mu.Unlock()

	if upd.Name != nil {
		merged.Name = *upd.Name
	}
	if upd.Password != nil {
		merged.Password = *upd.Password
	}
	if upd.AvatarURL != nil {
		merged.AvatarURL = *upd.AvatarURL
	}
	if upd.Bio != nil {
		merged.Bio = *upd.Bio
	}
	if upd.CoverURL != nil {
		merged.CoverURL = *upd.CoverURL
	}
	if upd.Theme != nil {
		merged.Theme = *upd.Theme
	}
	if upd.Favorites != nil {
		merged.Favorites = append([]string(nil), (*upd.Favorites)...)
	}

	updated, err := s.rs.ReplaceUser(ctx, merged)
	if err != nil {
		return nil, err
	}
	s.adopt(updated)
	return cloneUser(updated), nil
}

// adopt makes user the current identity and persists it.
func (s *Store) adopt(user *recordstore.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cloneUser(user)
	raw, err := json.Marshal(s.current)
	if err != nil {
		log.Printf("session: cannot serialize identity: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		log.Printf("session: cannot persist identity to %s: %v", s.path, err)
	}
}

func cloneUser(u *recordstore.User) *recordstore.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]string(nil), u.Favorites...)
	return &c
}
