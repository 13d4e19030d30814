package blog

import (
	"context"
	"testing"

	"inkwell/recordstore"
)

func seedPostWithComments(t *testing.T, client *recordstore.Client, authorID string) *recordstore.Post {
	t.Helper()
	created, err := client.CreatePost(context.Background(), recordstore.Post{
		Title: "Discussed", AuthorID: authorID, IsPublic: true, Likes: []string{},
		Comments: []recordstore.Comment{
			{ID: "c1", UserID: "2", Content: "first"},
			{ID: "c2", UserID: "3", Content: "second"},
			{ID: "c3", UserID: "2", Content: "third"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return created
}

func TestAddCommentAppends(t *testing.T) {
	svc, client := newTestService(t, nil)
	ctx := context.Background()
	user := signIn(t, svc, client, "A", "a@x.com")

	post := seedPostWithComments(t, client, user.ID)

	saved, err := svc.AddComment(ctx, post.ID, "fourth")
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Comments) != 4 {
		t.Fatalf("expected 4 comments, got %d", len(saved.Comments))
	}
	last := saved.Comments[3]
	if last.Content != "fourth" || last.UserID != user.ID || last.PostID != post.ID {
		t.Fatalf("bad appended comment: %+v", last)
	}
	if last.ID == "" || last.CreatedAt == "" {
		t.Fatalf("comment must carry a client-generated id and timestamp: %+v", last)
	}
}

func TestDeleteCommentPreservesOrder(t *testing.T) {
	svc, client := newTestService(t, nil)
	ctx := context.Background()
	signIn(t, svc, client, "A", "a@x.com")

	post := seedPostWithComments(t, client, "1")

	saved, err := svc.DeleteComment(ctx, post.ID, "c2")
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(saved.Comments))
	}
	if saved.Comments[0].ID != "c1" || saved.Comments[1].ID != "c3" {
		t.Fatalf("order not preserved: %+v", saved.Comments)
	}

	// Verify the store agrees, not just the returned value.
	stored, err := client.PostByID(ctx, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Comments) != 2 || stored.Comments[0].ID != "c1" || stored.Comments[1].ID != "c3" {
		t.Fatalf("stored comments wrong: %+v", stored.Comments)
	}
}

func TestDeleteMissingCommentIsHarmless(t *testing.T) {
	svc, client := newTestService(t, nil)
	ctx := context.Background()
	signIn(t, svc, client, "A", "a@x.com")

	post := seedPostWithComments(t, client, "1")

	saved, err := svc.DeleteComment(ctx, post.ID, "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Comments) != 3 {
		t.Fatalf("expected all 3 comments to survive, got %d", len(saved.Comments))
	}
}
