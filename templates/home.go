package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/recordstore"
)

// PostCard is one feed entry: the post plus its resolved author (nil when
// the author record is gone).
type PostCard struct {
	Post    recordstore.Post
	Author  *recordstore.User
	Excerpt string
}

func postCardComponent(card PostCard) g.Node {
	authorName := "Unknown"
	authorAvatar := avatarOr("")
	if card.Author != nil {
		authorName = card.Author.Name
		authorAvatar = avatarOr(card.Author.AvatarURL)
	}

	var banner g.Node
	if len(card.Post.Images) > 0 {
		banner = Img(Class("card-banner"), Src(card.Post.Images[0]), Alt(card.Post.Title))
	}

	return Article(Class("card post-card"),
		banner,
		H3(A(Href("/post/"+card.Post.ID), g.Text(card.Post.Title))),
		P(Class("excerpt"), g.Text(card.Excerpt)),
		Div(Class("card-meta row"),
			Img(Class("avatar-small"), Src(authorAvatar), Alt(authorName)),
			g.If(card.Author != nil,
				A(Href("/user/"+authorID(card.Author)), g.Text(authorName))),
			g.If(card.Author == nil, Span(g.Text(authorName))),
			Span(Class("likes"), g.Textf("♥ %d", len(card.Post.Likes))),
		),
	)
}

func authorID(u *recordstore.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

func HomePage(props LayoutProps, cards []PostCard) g.Node {
	return Layout(props,
		H1(g.Text("Latest posts")),
		g.If(len(cards) == 0,
			P(Class("empty-state"), g.Text("Nothing published yet."))),
		Div(Class("post-grid"),
			g.Group(g.Map(cards, postCardComponent)),
		),
	)
}

func SearchPage(props LayoutProps, query string, cards []PostCard, users []recordstore.User) g.Node {
	return Layout(props,
		H1(g.Text("Search")),
		Form(Method("get"), Action("/search"),
			Input(Type("text"), Name("q"), Value(query), Placeholder("Search posts and people")),
			Button(Type("submit"), g.Text("Search")),
		),
		g.If(query != "" && len(cards) == 0 && len(users) == 0,
			P(Class("empty-state"), g.Textf("No results for %q.", query))),
		g.If(len(cards) > 0,
			Section(
				H2(g.Text("Posts")),
				Div(Class("post-grid"), g.Group(g.Map(cards, postCardComponent))),
			)),
		g.If(len(users) > 0,
			Section(
				H2(g.Text("People")),
				Ul(g.Group(g.Map(users, func(u recordstore.User) g.Node {
					return Li(
						Img(Class("avatar-small"), Src(avatarOr(u.AvatarURL)), Alt(u.Name)),
						A(Href("/user/"+u.ID), g.Text(u.Name)),
					)
				}))),
			)),
	)
}

func AboutPage(props LayoutProps) g.Node {
	return Layout(props,
		H1(g.Text("About Inkwell")),
		P(g.Text("Inkwell is a small blogging space: write posts, collect the ones you love, and argue politely in the comments.")),
		P(g.Text("Accounts are free. The admin console keeps the place tidy.")),
	)
}

func ProfilePage(props LayoutProps, user recordstore.User, cards []PostCard) g.Node {
	return Layout(props,
		g.If(user.CoverURL != "",
			Img(Class("cover"), Src(user.CoverURL), Alt(""))),
		Div(Class("profile-header row"),
			Img(Class("avatar"), Src(avatarOr(user.AvatarURL)), Alt(user.Name)),
			Div(
				H1(g.Text(user.Name)),
				g.If(user.Bio != "", P(g.Text(user.Bio))),
			),
		),
		H2(g.Text("Posts")),
		g.If(len(cards) == 0,
			P(Class("empty-state"), g.Text("No public posts yet."))),
		Div(Class("post-grid"), g.Group(g.Map(cards, postCardComponent))),
	)
}
