package blog

import (
	"context"

	"inkwell/recordstore"
	"inkwell/session"
)

// Admin console operations. None of these check the acting identity's role:
// the view layer verifies admin before dispatching, and the record store
// performs no authorization at all. Hardening this into a real service
// would require moving enforcement server-side.

// ModerateDeletePost removes any post regardless of ownership.
func (s *Service) ModerateDeletePost(ctx context.Context, id string) error {
	post, err := s.Store.PostByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.DeletePost(ctx, id); err != nil {
		return err
	}
	keys := []string{KeyPost(id), KeyAllPosts()}
	if post != nil {
		keys = append(keys, KeyPostsByAuthor(post.AuthorID))
	}
	s.Cache.Invalidate(keys...)
	return nil
}

// ModerateReplacePost overwrites a post record wholesale, keeping its
// authorship intact. The body in the draft is re-encoded for storage.
func (s *Service) ModerateReplacePost(ctx context.Context, id string, draft Draft) (*recordstore.Post, error) {
	post, err := s.Store.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	updated := *post
	updated.Title = draft.Title
	updated.Body = recordstore.EncodeBody(draft.Body)
	updated.IsPublic = draft.IsPublic
	updated.AuthorID = post.AuthorID

	saved, err := s.Store.ReplacePost(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyPost(id), KeyPostsByAuthor(post.AuthorID), KeyAllPosts())
	return saved, nil
}

// ModerateDeleteUser removes an account. The user's posts are left in place
// as orphans; the store has no cascading delete.
func (s *Service) ModerateDeleteUser(ctx context.Context, id string) error {
	if err := s.Store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyUser(id), KeyAllUsers())
	return nil
}

// ModerateSetRole replaces the target user's record with the role changed
// and everything else untouched. Returns (nil, nil) if the user vanished.
func (s *Service) ModerateSetRole(ctx context.Context, userID, role string) (*recordstore.User, error) {
	user, err := s.Store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	updated := *user
	updated.Role = role

	saved, err := s.Store.ReplaceUser(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyUser(userID), KeyAllUsers())
	return saved, nil
}

// ModerateCreateUser creates an account from the admin console without
// touching the current session. The same client-checked email uniqueness
// applies as on self-registration.
func (s *Service) ModerateCreateUser(ctx context.Context, profile session.NewProfile, role string) (*recordstore.User, error) {
	users, err := s.Store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == profile.Email {
			return nil, nil
		}
	}
	if role == "" {
		role = recordstore.RoleUser
	}

	created, err := s.Store.CreateUser(ctx, recordstore.User{
		Name:      profile.Name,
		Email:     profile.Email,
		Password:  profile.Password,
		AvatarURL: profile.AvatarURL,
		Role:      role,
		Favorites: []string{},
	})
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyAllUsers())
	return created, nil
}
