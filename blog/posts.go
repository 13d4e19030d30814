package blog

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"inkwell/recordstore"
	"inkwell/session"
)

// Draft is what the editor hands over: the body is plain decoded HTML and
// gets percent-encoded on its way into the store.
type Draft struct {
	Title    string
	Body     string
	IsPublic bool
}

// ImageFile is one image picked in the form, not yet uploaded.
type ImageFile struct {
	Name string
	Data io.Reader
}

// uploadAll pushes every image to the image host concurrently and gathers
// the resulting URLs positionally, so the final order is the input order no
// matter which upload finishes first. One failure fails the lot.
func (s *Service) uploadAll(ctx context.Context, images []ImageFile) ([]string, error) {
	urls := make([]string, len(images))
	g, ctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			url, err := s.Uploader.Upload(ctx, img.Name, img.Data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// CreatePost uploads the images, encodes the body and creates the post
// authored by the signed-in user. If any upload fails no post is created.
func (s *Service) CreatePost(ctx context.Context, draft Draft, images []ImageFile) (*recordstore.Post, error) {
	user := s.Session.Current()
	if user == nil {
		return nil, ErrNotSignedIn
	}

	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return nil, err
	}

	created, err := s.Store.CreatePost(ctx, recordstore.Post{
		Title:     draft.Title,
		Body:      recordstore.EncodeBody(draft.Body),
		AuthorID:  user.ID,
		IsPublic:  draft.IsPublic,
		Images:    urls,
		Likes:     []string{},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(KeyPostsByAuthor(user.ID), KeyAllPosts())
	return created, nil
}

// EditPost re-reads the post, uploads only the new images and replaces the
// record with kept images first, new ones after, in form order. Authorship
// is carried over explicitly; an edit must never reassign it.
func (s *Service) EditPost(ctx context.Context, id string, draft Draft, keptImages []string, newImages []ImageFile) (*recordstore.Post, error) {
	post, err := s.Store.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	urls, err := s.uploadAll(ctx, newImages)
	if err != nil {
		return nil, err
	}

	updated := *post
	updated.Title = draft.Title
	updated.Body = recordstore.EncodeBody(draft.Body)
	updated.IsPublic = draft.IsPublic
	updated.Images = append(append([]string{}, keptImages...), urls...)
	updated.AuthorID = post.AuthorID
	updated.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	saved, err := s.Store.ReplacePost(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(KeyPost(id), KeyPostsByAuthor(post.AuthorID), KeyAllPosts())
	return saved, nil
}

// DeletePost removes the caller's own post. Ownership is checked by the
// view layer before dispatching here.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	user := s.Session.Current()
	if user == nil {
		return ErrNotSignedIn
	}
	if err := s.Store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyPost(id), KeyPostsByAuthor(user.ID), KeyAllPosts())
	return nil
}

// ToggleLike flips the acting user's presence in the post's like-set:
// absent adds, present removes. The whole post record is replaced since the
// store has no partial update.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (*recordstore.Post, error) {
	post, err := s.Store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	updated := *post
	updated.Likes = toggleID(post.Likes, userID)

	saved, err := s.Store.ReplacePost(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyPost(postID), KeyAllPosts())
	return saved, nil
}

// ToggleFavorite flips postID in the signed-in user's favorites list.
// Favorites live on the user record, so this goes through the session
// store, which replaces the user record and adopts the result.
func (s *Service) ToggleFavorite(ctx context.Context, postID string) (*recordstore.User, error) {
	user := s.Session.Current()
	if user == nil {
		return nil, ErrNotSignedIn
	}

	favorites := toggleID(user.Favorites, postID)
	updated, err := s.Session.Update(ctx, session.ProfileUpdate{Favorites: &favorites})
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyUser(user.ID), KeyAllUsers())
	return updated, nil
}

// toggleID is a symmetric-difference toggle that also deduplicates, so a
// list that somehow picked up a repeated id heals on the next toggle.
func toggleID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
