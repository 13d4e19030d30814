package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/constants"
	"inkwell/recordstore"
)

type LayoutProps struct {
	Title       string
	CurrentUser *recordstore.User
}

func NavbarComponent(props LayoutProps) g.Node {
	signedIn := props.CurrentUser != nil
	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href("/"), g.Text(constants.APP_NAME))),
			A(Href("/search"), g.Text("Search")),
			A(Href("/about"), g.Text("About")),
		),
		Div(Class("nav-links nav-right"),
			g.If(!signedIn,
				Div(
					A(Href("/login"), g.Text("Login")),
					A(Href("/register"), g.Text("Register")),
				),
			),
			g.If(signedIn,
				Div(Class("row"),
					Div(Class("col"), A(Href("/dashboard"), g.Textf("@%s", userName(props.CurrentUser)))),
					g.If(props.CurrentUser.IsAdmin(),
						Div(Class("col"), A(Href("/admin"), g.Text("Admin")))),
					Div(Class("col"),
						Form(Method("post"), Action("/logout"),
							Button(Type("submit"), Class("link-button"), g.Text("Logout")),
						),
					),
				)),
		),
	)
}

func userName(u *recordstore.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

func FooterComponent() g.Node {
	return Footer(Class("footer"),
		P(Class("with-love"),
			Small(g.Text("Inkwell, a small place for long thoughts.")),
		),
	)
}

func Layout(props LayoutProps, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/assets/css/chota.min.css")),
				Link(Rel("stylesheet"), Href("/assets/css/main.css")),
				TitleEl(g.Text(props.Title)),
			),
			Body(
				Div(Class("container"), Style("margin-top: 1.5em;"),
					NavbarComponent(props),
					Main(
						g.Group(children),
					),
				),
				FooterComponent(),
			),
		),
	)
}

// ErrorPage renders one of the failure taxonomy messages. Retry points back
// at the action that failed; prior state is untouched, so retrying is safe.
func ErrorPage(props LayoutProps, message, retryURL string) g.Node {
	return Layout(props,
		Section(Class("error-box"),
			H2(g.Text("Something went wrong")),
			P(g.Text(message)),
			g.If(retryURL != "",
				P(A(Href(retryURL), g.Text("Try again")))),
		),
	)
}

// avatarOr falls back to a generated placeholder the way the reference UI
// does for users without an avatar.
func avatarOr(url string) string {
	if url == "" {
		return "https://i.pravatar.cc/100"
	}
	return url
}
