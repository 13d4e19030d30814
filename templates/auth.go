package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func flashComponent(message string) g.Node {
	return g.If(message != "",
		Div(Class("flash"), P(g.Text(message))))
}

func LoginPage(props LayoutProps, message string) g.Node {
	return Layout(props,
		H1(g.Text("Login")),
		flashComponent(message),
		Form(Method("post"), Action("/login"), Class("auth-form"),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Required()),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			Button(Type("submit"), g.Text("Login")),
		),
		P(g.Text("No account yet? "), A(Href("/register"), g.Text("Register"))),
	)
}

func RegisterPage(props LayoutProps, message string) g.Node {
	return Layout(props,
		H1(g.Text("Register")),
		flashComponent(message),
		Form(Method("post"), Action("/register"), Class("auth-form"),
			Label(For("name"), g.Text("Display name")),
			Input(Type("text"), ID("name"), Name("name"), Required()),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Required()),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			Label(For("avatarUrl"), g.Text("Avatar URL (optional)")),
			Input(Type("url"), ID("avatarUrl"), Name("avatarUrl")),
			Button(Type("submit"), g.Text("Create account")),
		),
		P(g.Text("Already registered? "), A(Href("/login"), g.Text("Login"))),
	)
}
