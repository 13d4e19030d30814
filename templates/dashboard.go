package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/recordstore"
)

func dashboardNavComponent() g.Node {
	return Nav(Class("dashboard-nav"),
		A(Href("/dashboard"), g.Text("My posts")),
		A(Href("/dashboard/new"), g.Text("New post")),
		A(Href("/dashboard/favorites"), g.Text("Favorites")),
		A(Href("/dashboard/settings"), g.Text("Settings")),
	)
}

func MyPostsPage(props LayoutProps, posts []recordstore.Post) g.Node {
	return Layout(props,
		dashboardNavComponent(),
		H1(g.Text("My posts")),
		g.If(len(posts) == 0,
			P(Class("empty-state"), g.Text("You haven't written anything yet. "),
				A(Href("/dashboard/new"), g.Text("Start a post.")))),
		Table(Class("striped"),
			THead(Tr(Th(g.Text("Title")), Th(g.Text("Visibility")), Th(g.Text("Likes")), Th())),
			TBody(g.Group(g.Map(posts, func(p recordstore.Post) g.Node {
				visibility := "Private"
				if p.IsPublic {
					visibility = "Public"
				}
				return Tr(
					Td(A(Href("/post/"+p.ID), g.Text(p.Title))),
					Td(g.Text(visibility)),
					Td(g.Textf("%d", len(p.Likes))),
					Td(Class("row"),
						A(Href("/dashboard/edit/"+p.ID), g.Text("Edit")),
						Form(Method("post"), Action("/dashboard/delete/"+p.ID),
							Button(Type("submit"), Class("link-button"), g.Text("Delete")),
						),
					),
				)
			}))),
		),
	)
}

// PostFormPage is shared by create and edit. For edits, post carries the
// existing record and body its decoded HTML; kept images render with
// checkboxes so the author can drop them.
func PostFormPage(props LayoutProps, post *recordstore.Post, body, message string) g.Node {
	action := "/dashboard/new"
	heading := "New post"
	title := ""
	isPublic := true
	var images []string
	if post != nil {
		action = "/dashboard/edit/" + post.ID
		heading = "Edit post"
		title = post.Title
		isPublic = post.IsPublic
		images = post.Images
	}

	return Layout(props,
		dashboardNavComponent(),
		H1(g.Text(heading)),
		flashComponent(message),
		Form(Method("post"), Action(action), EncType("multipart/form-data"), Class("post-form"),
			Label(For("title"), g.Text("Title")),
			Input(Type("text"), ID("title"), Name("title"), Value(title), Required()),

			Label(For("body"), g.Text("Body")),
			// Stand-in for the rich-text widget: anything that submits an
			// HTML string in this field works.
			Textarea(ID("body"), Name("body"), Rows("14"), g.Text(body)),

			g.If(len(images) > 0,
				Div(Class("kept-images"),
					P(g.Text("Current images (uncheck to remove)")),
					g.Group(g.Map(images, func(src string) g.Node {
						return Label(Class("kept-image"),
							Input(Type("checkbox"), Name("keepImage"), Value(src), Checked()),
							Img(Class("thumb"), Src(src), Alt("")),
						)
					})),
				)),

			Label(For("images"), g.Text("Add images")),
			Input(Type("file"), ID("images"), Name("images"), Multiple(), Accept("image/*")),

			Label(For("visibility"), g.Text("Visibility")),
			Select(ID("visibility"), Name("visibility"),
				Option(Value("public"), g.Text("Public"), g.If(isPublic, Selected())),
				Option(Value("private"), g.Text("Private"), g.If(!isPublic, Selected())),
			),

			Button(Type("submit"), g.Text("Save")),
		),
	)
}

func FavoritesPage(props LayoutProps, cards []PostCard) g.Node {
	return Layout(props,
		dashboardNavComponent(),
		H1(g.Text("Favorites")),
		g.If(len(cards) == 0,
			P(Class("empty-state"), g.Text("Nothing saved yet. Tap ☆ on a post to keep it here."))),
		Div(Class("post-grid"), g.Group(g.Map(cards, postCardComponent))),
	)
}

func SettingsPage(props LayoutProps, user recordstore.User, message string) g.Node {
	return Layout(props,
		dashboardNavComponent(),
		H1(g.Text("Settings")),
		flashComponent(message),
		Form(Method("post"), Action("/dashboard/settings"), Class("settings-form"),
			Label(For("name"), g.Text("Display name")),
			Input(Type("text"), ID("name"), Name("name"), Value(user.Name), Required()),

			Label(For("avatarUrl"), g.Text("Avatar URL")),
			Input(Type("url"), ID("avatarUrl"), Name("avatarUrl"), Value(user.AvatarURL)),

			Label(For("coverUrl"), g.Text("Cover image URL")),
			Input(Type("url"), ID("coverUrl"), Name("coverUrl"), Value(user.CoverURL)),

			Label(For("bio"), g.Text("Bio")),
			Textarea(ID("bio"), Name("bio"), Rows("4"), g.Text(user.Bio)),

			Label(For("theme"), g.Text("Theme")),
			Input(Type("text"), ID("theme"), Name("theme"), Value(user.Theme)),

			Label(For("password"), g.Text("New password (leave empty to keep)")),
			Input(Type("password"), ID("password"), Name("password")),

			Button(Type("submit"), g.Text("Save changes")),
		),
	)
}
