package ui

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/auth"
)

// authCard lays out the centered card both auth pages share.
func authCard(icon, title, subtitle string, body ...app.UI) app.UI {
	header := app.Div().Class("auth-header").Body(
		app.Div().Class("auth-icon").Body(
			app.Span().Class("material-symbols-rounded").Text(icon),
		),
		app.H1().Class("auth-title").Text(title),
		app.Span().Class("auth-subtitle").Text(subtitle),
	)
	return app.Div().Class("auth-container").Body(
		app.Div().Class("auth-card").Body(
			append([]app.UI{header}, body...)...,
		),
	)
}

func authField(label, typ, value string, onInput app.EventHandler, focus bool) app.UI {
	input := app.Input().Type(typ).Required(true).Value(value).OnInput(onInput)
	if focus {
		input = input.AutoFocus(true)
	}
	return app.Div().Class("md3-field").Body(
		app.Label().Text(label),
		input,
	)
}

func authError(msg string) app.UI {
	return app.If(msg != "",
		app.Div().Class("auth-error").Body(
			app.Span().Class("material-symbols-rounded").Style("font-size", "18px").Text("error"),
			app.Text(msg),
		),
	)
}

func authSubmit(label string, loading bool) app.UI {
	return app.Button().Type("submit").Class("btn-m3-primary").Disabled(loading).Body(
		app.If(loading,
			app.Div().Class("loader-spinner").
				Style("width", "20px").
				Style("height", "20px").
				Style("border-color", "var(--md-sys-color-on-primary)").
				Style("border-bottom-color", "transparent"),
		).Else(
			app.Text(label),
			app.Span().Class("material-symbols-rounded").Style("font-size", "18px").Text("arrow_forward"),
		),
	)
}

func postCredentials(path, username, password string) (*http.Response, error) {
	body, _ := json.Marshal(auth.Credentials{
		Username: username,
		Password: password,
	})
	return http.Post(path, "application/json", bytes.NewBuffer(body))
}

type LoginPage struct {
	app.Compo
	Username            string
	Password            string
	Error               string
	Loading             bool
	RegistrationAllowed bool
}

func (p *LoginPage) OnMount(ctx app.Context) {
	app.Window().Get("document").Get("body").Get("classList").Call("add", "dark-theme")
	p.checkRegistration(ctx)
}

func (p *LoginPage) checkRegistration(ctx app.Context) {
	go func() {
		resp, err := http.Get("/api/auth/config")
		if err != nil {
			return
		}
		defer resp.Body.Close()
		var config map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&config); err == nil {
			ctx.Dispatch(func(ctx app.Context) {
				p.RegistrationAllowed = config["registration_allowed"]
				p.Update()
			})
		}
	}()
}

func (p *LoginPage) login(ctx app.Context, e app.Event) {
	e.PreventDefault()
	p.Loading = true
	p.Error = ""
	p.Update()

	go func() {
		resp, err := postCredentials("/api/auth/login", p.Username, p.Password)
		ctx.Dispatch(func(ctx app.Context) {
			p.Loading = false
			if err != nil {
				p.Error = "Connection failed"
				p.Update()
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == 200 {
				ctx.Navigate("/")
			} else {
				p.Error = "Invalid credentials"
				p.Update()
			}
		})
	}()
}

func (p *LoginPage) Render() app.UI {
	return authCard("shield", "Welcome Back", "Sign in to your Gatehouse account",
		app.Form().OnSubmit(p.login).
			Style("display", "flex").
			Style("flex-direction", "column").
			Style("gap", "20px").
			Body(
				authField("Username", "text", p.Username, p.ValueTo(&p.Username), true),
				authField("Password", "password", p.Password, p.ValueTo(&p.Password), false),
				authError(p.Error),
				authSubmit("Sign In", p.Loading),
			),
		app.If(p.RegistrationAllowed,
			app.Div().Class("auth-footer").Body(
				app.Text("First time here? "),
				app.A().Class("link-primary").Href("/register").Text("Create the admin account"),
			),
		),
	)
}

type RegisterPage struct {
	app.Compo
	Username string
	Password string
	Confirm  string
	Error    string
	Loading  bool
}

func (p *RegisterPage) OnMount(ctx app.Context) {
	app.Window().Get("document").Get("body").Get("classList").Call("add", "dark-theme")
}

func (p *RegisterPage) register(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if p.Password != p.Confirm {
		p.Error = "Passwords do not match"
		p.Update()
		return
	}
	if len(p.Password) < 8 {
		p.Error = "Password must be at least 8 characters"
		p.Update()
		return
	}
	p.Loading = true
	p.Error = ""
	p.Update()

	go func() {
		resp, err := postCredentials("/api/auth/register", p.Username, p.Password)
		ctx.Dispatch(func(ctx app.Context) {
			p.Loading = false
			if err != nil {
				p.Error = "Connection failed"
				p.Update()
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case 201:
				ctx.Navigate("/login")
			case 403:
				p.Error = "This server already has an account"
				p.Update()
			default:
				p.Error = "Registration failed"
				p.Update()
			}
		})
	}()
}

func (p *RegisterPage) Render() app.UI {
	return authCard("person_add", "Create Account", "Set up the Gatehouse administrator",
		app.Form().OnSubmit(p.register).
			Style("display", "flex").
			Style("flex-direction", "column").
			Style("gap", "20px").
			Body(
				authField("Username", "text", p.Username, p.ValueTo(&p.Username), true),
				authField("Password", "password", p.Password, p.ValueTo(&p.Password), false),
				authField("Confirm Password", "password", p.Confirm, p.ValueTo(&p.Confirm), false),
				authError(p.Error),
				authSubmit("Sign Up", p.Loading),
			),
		app.Div().Class("auth-footer").Body(
			app.Text("Already set up? "),
			app.A().Class("link-primary").Href("/login").Text("Sign In"),
		),
	)
}
