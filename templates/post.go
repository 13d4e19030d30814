package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/recordstore"
)

// CommentView is a comment joined with its author for display.
type CommentView struct {
	Comment recordstore.Comment
	Author  *recordstore.User
}

// PostDetail carries everything the detail page renders. Body is the
// percent-decoded HTML, ready to be emitted raw.
type PostDetail struct {
	Post     recordstore.Post
	Body     string
	Author   *recordstore.User
	Liked    bool
	Saved    bool
	Comments []CommentView
}

func PostPage(props LayoutProps, d PostDetail) g.Node {
	signedIn := props.CurrentUser != nil

	return Layout(props,
		Article(Class("post-detail"),
			Div(Class("post-header row"),
				authorBoxComponent(d.Author),
				Div(Class("post-actions"),
					likeButtonComponent(d, signedIn),
					favoriteButtonComponent(d, signedIn),
				),
			),
			H1(g.Text(d.Post.Title)),
			g.Group(g.Map(d.Post.Images, func(src string) g.Node {
				return Img(Class("post-image"), Src(src), Alt(d.Post.Title))
			})),
			// The body comes from the rich-text editor and is stored as
			// HTML; render it as-is.
			Div(Class("post-body"), g.Raw(d.Body)),
		),
		commentSectionComponent(props, d),
	)
}

func authorBoxComponent(author *recordstore.User) g.Node {
	if author == nil {
		return Div(Class("author-box"), Span(g.Text("Unknown author")))
	}
	return Div(Class("author-box row"),
		Img(Class("avatar"), Src(avatarOr(author.AvatarURL)), Alt(author.Name)),
		Div(
			Strong(g.Text(author.Name)),
			Br(),
			A(Href("/user/"+author.ID), g.Text("View profile")),
		),
	)
}

func likeButtonComponent(d PostDetail, signedIn bool) g.Node {
	label := g.Textf("♥ %d", len(d.Post.Likes))
	if !signedIn {
		return Span(Class("like-count"), label)
	}
	class := "like-button"
	if d.Liked {
		class += " active"
	}
	return Form(Method("post"), Action("/post/"+d.Post.ID+"/like"),
		Button(Type("submit"), Class(class), label),
	)
}

func favoriteButtonComponent(d PostDetail, signedIn bool) g.Node {
	if !signedIn {
		return nil
	}
	label := g.Text("☆ Save")
	if d.Saved {
		label = g.Text("★ Saved")
	}
	return Form(Method("post"), Action("/post/"+d.Post.ID+"/favorite"),
		Button(Type("submit"), Class("favorite-button"), label),
	)
}

func commentSectionComponent(props LayoutProps, d PostDetail) g.Node {
	return Section(Class("comments"),
		H2(g.Textf("Comments (%d)", len(d.Comments))),
		g.If(props.CurrentUser != nil,
			Form(Method("post"), Action("/post/"+d.Post.ID+"/comment"),
				Textarea(Name("content"), Rows("3"), Placeholder("Say something kind"), Required()),
				Button(Type("submit"), g.Text("Comment")),
			)),
		g.If(props.CurrentUser == nil,
			P(Class("empty-state"),
				A(Href("/login"), g.Text("Login")), g.Text(" to join the conversation."))),
		g.If(len(d.Comments) == 0,
			P(Class("empty-state"), g.Text("No comments yet. Be the first!"))),
		Div(
			g.Group(g.Map(d.Comments, func(cv CommentView) g.Node {
				return commentItemComponent(props, d.Post.ID, cv)
			})),
		),
	)
}

func commentItemComponent(props LayoutProps, postID string, cv CommentView) g.Node {
	name := "Unknown User"
	avatar := avatarOr("")
	if cv.Author != nil {
		name = cv.Author.Name
		avatar = avatarOr(cv.Author.AvatarURL)
	}

	mine := props.CurrentUser != nil && cv.Author != nil &&
		props.CurrentUser.ID == cv.Author.ID

	return Div(Class("comment row"),
		Img(Class("avatar-small"), Src(avatar), Alt(name)),
		Div(Class("comment-body"),
			Div(Class("comment-meta"),
				Strong(g.Text(name)),
				Small(g.Text(" "+cv.Comment.CreatedAt)),
			),
			P(g.Text(cv.Comment.Content)),
			g.If(mine,
				Form(Method("post"), Action("/post/"+postID+"/comment/"+cv.Comment.ID+"/delete"),
					Button(Type("submit"), Class("link-button"), g.Text("Delete")),
				)),
		),
	)
}
