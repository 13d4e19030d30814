package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/recordstore"
)

func adminNavComponent() g.Node {
	return Nav(Class("dashboard-nav"),
		A(Href("/admin"), g.Text("Overview")),
		A(Href("/admin/posts"), g.Text("Posts")),
		A(Href("/admin/users"), g.Text("Users")),
	)
}

func AdminOverviewPage(props LayoutProps, userCount, postCount, publicCount int) g.Node {
	return Layout(props,
		adminNavComponent(),
		H1(g.Text("Admin overview")),
		Div(Class("row stats"),
			Div(Class("col card"), H2(g.Textf("%d", userCount)), P(g.Text("accounts"))),
			Div(Class("col card"), H2(g.Textf("%d", postCount)), P(g.Text("posts"))),
			Div(Class("col card"), H2(g.Textf("%d", publicCount)), P(g.Text("public posts"))),
		),
	)
}

func AdminPostsPage(props LayoutProps, posts []recordstore.Post, authors map[string]recordstore.User) g.Node {
	return Layout(props,
		adminNavComponent(),
		H1(g.Text("All posts")),
		Table(Class("striped"),
			THead(Tr(Th(g.Text("Title")), Th(g.Text("Author")), Th(g.Text("Visibility")), Th(g.Text("Likes")), Th())),
			TBody(g.Group(g.Map(posts, func(p recordstore.Post) g.Node {
				authorName := p.AuthorID
				if a, ok := authors[p.AuthorID]; ok {
					authorName = a.Name
				}
				visibility := "Private"
				if p.IsPublic {
					visibility = "Public"
				}
				return Tr(
					Td(A(Href("/post/"+p.ID), g.Text(p.Title))),
					Td(g.Text(authorName)),
					Td(g.Text(visibility)),
					Td(g.Textf("%d", len(p.Likes))),
					Td(Class("row"),
						A(Href("/admin/posts/"+p.ID+"/edit"), g.Text("Edit")),
						A(Href("/admin/posts/"+p.ID+"/delete"), g.Text("Delete")),
					),
				)
			}))),
		),
	)
}

func AdminPostEditPage(props LayoutProps, post recordstore.Post, body string) g.Node {
	return Layout(props,
		adminNavComponent(),
		H1(g.Textf("Edit post: %s", post.Title)),
		Form(Method("post"), Action("/admin/posts/"+post.ID+"/edit"), Class("post-form"),
			Label(For("title"), g.Text("Title")),
			Input(Type("text"), ID("title"), Name("title"), Value(post.Title), Required()),
			Label(For("body"), g.Text("Body")),
			Textarea(ID("body"), Name("body"), Rows("14"), g.Text(body)),
			Label(For("visibility"), g.Text("Visibility")),
			Select(ID("visibility"), Name("visibility"),
				Option(Value("public"), g.Text("Public"), g.If(post.IsPublic, Selected())),
				Option(Value("private"), g.Text("Private"), g.If(!post.IsPublic, Selected())),
			),
			Button(Type("submit"), g.Text("Save")),
		),
	)
}

func AdminUsersPage(props LayoutProps, users []recordstore.User, message string) g.Node {
	return Layout(props,
		adminNavComponent(),
		H1(g.Text("All accounts")),
		flashComponent(message),
		Table(Class("striped"),
			THead(Tr(Th(g.Text("Name")), Th(g.Text("Email")), Th(g.Text("Role")), Th())),
			TBody(g.Group(g.Map(users, func(u recordstore.User) g.Node {
				return Tr(
					Td(A(Href("/user/"+u.ID), g.Text(u.Name))),
					Td(g.Text(u.Email)),
					Td(g.Text(u.Role)),
					Td(Class("row"),
						A(Href("/admin/users/"+u.ID+"/role"), g.Text("Change role")),
						A(Href("/admin/users/"+u.ID+"/delete"), g.Text("Delete")),
					),
				)
			}))),
		),
		H2(g.Text("Create account")),
		Form(Method("post"), Action("/admin/users"), Class("auth-form"),
			Input(Type("text"), Name("name"), Placeholder("Display name"), Required()),
			Input(Type("email"), Name("email"), Placeholder("Email"), Required()),
			Input(Type("password"), Name("password"), Placeholder("Password"), Required()),
			Select(Name("role"),
				Option(Value("user"), g.Text("user"), Selected()),
				Option(Value("admin"), g.Text("admin")),
			),
			Button(Type("submit"), g.Text("Create")),
		),
	)
}

// ConfirmPage is the explicit confirmation step that precedes every
// destructive admin action. The POST only happens if the admin clicks
// through here.
func ConfirmPage(props LayoutProps, question, detail, action, cancelURL string) g.Node {
	return Layout(props,
		Section(Class("confirm-box card"),
			H1(g.Text(question)),
			g.If(detail != "", P(g.Text(detail))),
			Div(Class("row"),
				Form(Method("post"), Action(action),
					Button(Type("submit"), Class("button error"), g.Text("Yes, do it")),
				),
				A(Href(cancelURL), Class("button"), g.Text("Cancel")),
			),
		),
	)
}

// RolePickerPage lets an admin choose the new role before the confirmed
// POST fires.
func RolePickerPage(props LayoutProps, user recordstore.User) g.Node {
	other := recordstore.RoleAdmin
	if user.IsAdmin() {
		other = recordstore.RoleUser
	}
	return ConfirmPage(props,
		"Change role for "+user.Name+"?",
		"Current role: "+user.Role+". This will set it to "+other+".",
		"/admin/users/"+user.ID+"/role?role="+other,
		"/admin/users",
	)
}
