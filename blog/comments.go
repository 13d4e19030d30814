package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell/recordstore"
)

// Comments are embedded in their parent post, so both operations here are a
// read-modify-write of the whole post record. Two concurrent comment writes
// to the same post race: last writer wins and the earlier comment is
// silently lost. Known limitation of the embedded layout, kept as is.

// AddComment appends a comment by the signed-in user and replaces the post.
// The comment id is generated client-side; the store never sees comments as
// individual records.
func (s *Service) AddComment(ctx context.Context, postID, content string) (*recordstore.Post, error) {
	user := s.Session.Current()
	if user == nil {
		return nil, ErrNotSignedIn
	}

	post, err := s.Store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	updated := *post
	updated.Comments = append(append([]recordstore.Comment{}, post.Comments...), recordstore.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    user.ID,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	saved, err := s.Store.ReplacePost(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyPost(postID))
	return saved, nil
}

// DeleteComment filters the comment out, preserving the order of the rest,
// and replaces the post. Deleting an id that isn't there is a no-op write.
func (s *Service) DeleteComment(ctx context.Context, postID, commentID string) (*recordstore.Post, error) {
	post, err := s.Store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	updated := *post
	updated.Comments = make([]recordstore.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		if c.ID != commentID {
			updated.Comments = append(updated.Comments, c)
		}
	}

	saved, err := s.Store.ReplacePost(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(KeyPost(postID))
	return saved, nil
}
