package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"
)

type Navbar struct {
	app.Compo
	Username      string
	Hostname      string
	Uptime        string
	Active        string
	Theme         string
	IsOpen        bool
	OnToggleTheme func(app.Context, app.Event)
	OnLogout      func(app.Context, app.Event)
}

func (n *Navbar) Render() app.UI {
	themeIcon := "light_mode"
	if n.Theme == "dark" {
		themeIcon = "dark_mode"
	}

	sidebarClass := "sidebar"
	if n.IsOpen {
		sidebarClass += " open"
	}

	return app.Aside().Class(sidebarClass).Body(
		// Header
		app.Div().Class("sidebar-header").Body(
			app.Div().Class("brand").Body(
				app.Text("Gatehouse"),
			),
			app.Button().Class("btn-icon").Title("Toggle Theme").OnClick(n.OnToggleTheme).Body(
				app.Span().Class("material-symbols-rounded").Text(themeIcon),
			),
		),

		// Pages
		app.Div().Class("repo-list-container").Body(
			app.Div().Class("section-label").Text("Pages"),
			app.Ul().Class("repo-list").Body(
				n.renderLink("dashboard", "Dashboard", "monitoring", "/"),
				n.renderLink("activity", "Activity", "receipt_long", "/activity"),
			),
		),

		// Footer
		app.Div().Class("sidebar-footer").Body(
			app.If(n.Username != "",
				app.Div().Class("sys-stat").Body(
					app.Div().Class("sys-stat-label").Body(
						app.Span().Class("material-symbols-rounded").Text("person"),
						app.Text("Signed in"),
					),
					app.Div().Style("font-weight", "500").Text(n.Username),
				),
			),
			app.Div().Class("sys-stat").Body(
				app.Div().Class("sys-stat-label").Body(
					app.Span().Class("material-symbols-rounded").Text("dns"),
					app.Text("Host"),
				),
				app.Div().Style("font-weight", "500").Text(n.Hostname),
			),
			app.Div().Class("sys-stat").Body(
				app.Div().Class("sys-stat-label").Body(
					app.Span().Class("material-symbols-rounded").Text("schedule"),
					app.Text("Uptime"),
				),
				app.Div().Style("font-weight", "500").Text(n.Uptime),
			),
			// Logout
			app.Div().Class("sys-stat").Style("cursor", "pointer").OnClick(func(ctx app.Context, e app.Event) {
				if n.OnLogout != nil {
					e.PreventDefault()
					n.OnLogout(ctx, e)
				}
			}).Body(
				app.Div().Class("sys-stat-label").Style("color", "var(--md-sys-color-error)").Body(
					app.Span().Class("material-symbols-rounded").Text("logout"),
					app.Text("Sign Out"),
				),
			),
		),
	)
}

func (n *Navbar) renderLink(key, label, icon, path string) app.UI {
	activeClass := ""
	if n.Active == key {
		activeClass = "active"
	}
	return app.Li().Class("repo-item "+activeClass).
		OnClick(func(ctx app.Context, e app.Event) {
			ctx.Navigate(path)
		}).
		Body(
			app.Span().Class("material-symbols-rounded").Text(icon),
			app.Span().Class("path").Text(label),
		)
}
